package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCustomerNameLength = 200
	MaxEquipmentPerLine   = 1000
	NotificationListLimit = 50
)

// FacilityConfigID идентификатор единственной строки конфигурации площадки
const FacilityConfigID = "default"
