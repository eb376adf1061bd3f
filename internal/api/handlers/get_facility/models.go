package get_facility

import (
	catalogService "github.com/courtflow/CF-BookingEngine/internal/service/catalog"
)

// ConfigResponse конфигурация площадки
type ConfigResponse struct {
	Timezone    string `json:"timezone"`
	OpenTime    string `json:"openTime"`
	CloseTime   string `json:"closeTime"`
	SlotMinutes int    `json:"slotMinutes"`
}

// CourtResponse корт площадки
type CourtResponse struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Surface              string `json:"surface"`
	BaseRateCentsPerHour int64  `json:"baseRateCentsPerHour"`
	IsActive             bool   `json:"isActive"`
}

// CoachResponse тренер площадки
type CoachResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	HourlyRateCents int64  `json:"hourlyRateCents"`
	IsActive        bool   `json:"isActive"`
}

// EquipmentTypeResponse тип инвентаря площадки
type EquipmentTypeResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalQuantity  int    `json:"totalQuantity"`
	IsActive       bool   `json:"isActive"`
}

// FacilityResponse HTTP response model
type FacilityResponse struct {
	Config         ConfigResponse          `json:"config"`
	Courts         []CourtResponse         `json:"courts"`
	Coaches        []CoachResponse         `json:"coaches"`
	EquipmentTypes []EquipmentTypeResponse `json:"equipmentTypes"`
}

// FromSnapshot конвертирует сводку площадки в HTTP response
func FromSnapshot(snapshot *catalogService.FacilitySnapshot) *FacilityResponse {
	resp := &FacilityResponse{
		Config: ConfigResponse{
			Timezone:    snapshot.Config.Timezone,
			OpenTime:    snapshot.Config.OpenTime.String(),
			CloseTime:   snapshot.Config.CloseTime.String(),
			SlotMinutes: snapshot.Config.SlotMinutes,
		},
		Courts:         make([]CourtResponse, 0, len(snapshot.Courts)),
		Coaches:        make([]CoachResponse, 0, len(snapshot.Coaches)),
		EquipmentTypes: make([]EquipmentTypeResponse, 0, len(snapshot.EquipmentTypes)),
	}

	for _, c := range snapshot.Courts {
		resp.Courts = append(resp.Courts, CourtResponse{
			ID:                   c.ID,
			Name:                 c.Name,
			Surface:              string(c.Surface),
			BaseRateCentsPerHour: c.BaseRateCentsPerHour,
			IsActive:             c.IsActive,
		})
	}
	for _, c := range snapshot.Coaches {
		resp.Coaches = append(resp.Coaches, CoachResponse{
			ID:              c.ID,
			Name:            c.Name,
			HourlyRateCents: c.HourlyRateCents,
			IsActive:        c.IsActive,
		})
	}
	for _, et := range snapshot.EquipmentTypes {
		resp.EquipmentTypes = append(resp.EquipmentTypes, EquipmentTypeResponse{
			ID:             et.ID,
			Name:           et.Name,
			UnitPriceCents: et.UnitPriceCents,
			TotalQuantity:  et.TotalQuantity,
			IsActive:       et.IsActive,
		})
	}

	return resp
}
