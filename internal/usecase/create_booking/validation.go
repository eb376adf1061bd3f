package create_booking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// validateRequest валидирует входные данные и нормализует их на месте:
// имя обрезается, email приводится к нижнему регистру, строки инвентаря
// схлопываются по типу и сортируются по возрастанию ID (фиксированный
// порядок блокировок).
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is malformed", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if req.CoachID != nil && *req.CoachID <= 0 {
		return fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
	}

	equipment, err := normalizeEquipment(req.Equipment)
	if err != nil {
		return err
	}
	req.Equipment = equipment

	return nil
}

// normalizeEquipment схлопывает дубликаты по типу, отбрасывает
// неположительные количества и сортирует по ID
func normalizeEquipment(lines []EquipmentLine) ([]EquipmentLine, error) {
	byType := make(map[int64]int)
	for _, line := range lines {
		if line.EquipmentTypeID <= 0 {
			return nil, fmt.Errorf("%w: equipmentTypeId must be positive", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			continue
		}
		byType[line.EquipmentTypeID] += line.Quantity
	}

	normalized := make([]EquipmentLine, 0, len(byType))
	for id, qty := range byType {
		if qty > domain.MaxEquipmentPerLine {
			return nil, fmt.Errorf("%w: equipment quantity exceeds %d", ErrInvalidInput, domain.MaxEquipmentPerLine)
		}
		normalized = append(normalized, EquipmentLine{EquipmentTypeID: id, Quantity: qty})
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].EquipmentTypeID < normalized[j].EquipmentTypeID
	})

	return normalized, nil
}
