// Package orderrepo persists the order aggregate. Only the fields the slot
// service reads or writes are mapped.
package orderrepo

import (
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerName string     `gorm:"type:varchar(255);not null"`
	LechonType   string     `gorm:"type:varchar(32);not null"`
	Status       string     `gorm:"type:varchar(32);not null"`
	SlotID       *uuid.UUID `gorm:"type:uuid;index"`
	CookingDate  *time.Time `gorm:"type:timestamptz"`
	CookedDate   *time.Time `gorm:"type:timestamptz"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var slotID *uuid.UUID
	if id := o.SlotID(); id != nil {
		raw := id.Bytes()
		slotID = &raw
	}

	return OrderDTO{
		ID:           o.ID().Bytes(),
		CustomerName: o.CustomerName(),
		LechonType:   o.LechonType().String(),
		Status:       o.Status().String(),
		SlotID:       slotID,
		CookingDate:  o.CookingDate(),
		CookedDate:   o.CookedDate(),
		CreatedBy:    o.CreatedBy().Bytes(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var slotID *kernel.UUID
	if dto.SlotID != nil {
		sID, slotErr := kernel.UUIDFromBytes((*dto.SlotID)[:])
		if slotErr != nil {
			return nil, slotErr
		}
		slotID = &sID
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		CustomerName: dto.CustomerName,
		LechonType:   kernel.LechonType(dto.LechonType),
		Status:       status,
		SlotID:       slotID,
		CookingDate:  dto.CookingDate,
		CookedDate:   dto.CookedDate,
		CreatedBy:    createdBy,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
