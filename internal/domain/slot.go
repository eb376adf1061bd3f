package domain

import "time"

// EquipmentAvailability остаток инвентаря одного типа в конкретном слоте
type EquipmentAvailability struct {
	EquipmentType EquipmentType
	Reserved      int
	Remaining     int
}

// SlotAvailability проекция состояния ресурсов на один временной слот
type SlotAvailability struct {
	StartAt          time.Time
	EndAt            time.Time
	AvailableCourts  []Court
	AvailableCoaches []Coach
	Equipment        []EquipmentAvailability
}

// HasFreeCourt returns true if at least one court is free in the slot
func (s *SlotAvailability) HasFreeCourt() bool {
	return len(s.AvailableCourts) > 0
}

// HasFreeCoach returns true if at least one coach is free in the slot
func (s *SlotAvailability) HasFreeCoach() bool {
	return len(s.AvailableCoaches) > 0
}
