// Package slotrepo persists the slot aggregate: the slot row, its ordered
// occupants and its cooking history.
package slotrepo

import (
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"

	"github.com/google/uuid"
)

// SlotDTO is a row of the slots table.
type SlotDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name      string            `gorm:"type:varchar(50);not null;uniqueIndex:slots_name_key"`
	Capacity  int               `gorm:"type:integer;not null"`
	Type      string            `gorm:"type:varchar(32);not null"`
	Status    string            `gorm:"type:varchar(32);not null"`
	Notes     string            `gorm:"type:varchar(200);not null;default:''"`
	CreatedAt time.Time         `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time         `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Occupants []OccupantDTO     `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE"`
	History   []HistoryEntryDTO `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE"`
}

func (SlotDTO) TableName() string {
	return "slots"
}

// OccupantDTO places an order in a slot. Position keeps assignment order.
type OccupantDTO struct {
	SlotID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:integer;not null"`
}

func (OccupantDTO) TableName() string {
	return "slot_occupants"
}

// HistoryEntryDTO is one cooking cycle of an order in a slot.
type HistoryEntryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SlotID       uuid.UUID  `gorm:"type:uuid;not null"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null"`
	StartCooking time.Time  `gorm:"type:timestamptz;not null"`
	EndCooking   *time.Time `gorm:"type:timestamptz"`
}

func (HistoryEntryDTO) TableName() string {
	return "slot_history"
}

func fromDomain(s *slot.Slot) SlotDTO {
	slotID := s.ID().Bytes()

	currentOrders := s.CurrentOrders()
	occupants := make([]OccupantDTO, 0, len(currentOrders))
	for i, orderID := range currentOrders {
		occupants = append(occupants, OccupantDTO{
			SlotID:   slotID,
			OrderID:  orderID.Bytes(),
			Position: i,
		})
	}

	entries := s.History()
	history := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		history = append(history, HistoryEntryDTO{
			ID:           e.ID().Bytes(),
			SlotID:       slotID,
			OrderID:      e.OrderID().Bytes(),
			StartCooking: e.StartCooking(),
			EndCooking:   e.EndCooking(),
		})
	}

	return SlotDTO{
		ID:        slotID,
		Name:      s.Name(),
		Capacity:  s.Capacity(),
		Type:      s.Type().String(),
		Status:    s.Status().String(),
		Notes:     s.Notes(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
		Occupants: occupants,
		History:   history,
	}
}

func toDomain(dto SlotDTO) (*slot.Slot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := slot.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	currentOrders := make([]kernel.UUID, 0, len(dto.Occupants))
	for _, o := range dto.Occupants {
		orderID, idErr := kernel.UUIDFromBytes(o.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		currentOrders = append(currentOrders, orderID)
	}

	history := make([]*slot.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := historyEntryToDomain(h)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return slot.RestoreSlot(slot.RestoreSlotParams{
		ID:            id,
		Name:          dto.Name,
		Capacity:      dto.Capacity,
		Type:          kernel.LechonType(dto.Type),
		Status:        status,
		Notes:         dto.Notes,
		CurrentOrders: currentOrders,
		History:       history,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	})
}

func historyEntryToDomain(dto HistoryEntryDTO) (*slot.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return slot.RestoreHistoryEntry(id, orderID, dto.StartCooking, dto.EndCooking)
}
