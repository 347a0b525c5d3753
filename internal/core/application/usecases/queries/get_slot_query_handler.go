package queries

import (
	"context"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetSlotQueryHandler reads a slot without taking locks.
type GetSlotQueryHandler struct {
	db *gorm.DB
}

func NewGetSlotQueryHandler(db *gorm.DB) GetSlotQueryHandler {
	return GetSlotQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown or malformed ids.
func (h GetSlotQueryHandler) Handle(ctx context.Context, query GetSlotQuery) (GetSlotQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSlotQueryResponse{}, err
	}

	slotID, err := kernel.UUIDFromString(query.SlotID())
	if err != nil {
		return GetSlotQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("slot", query.SlotID(), err)
	}

	db := h.db.WithContext(ctx)

	var row struct {
		Name      string
		Capacity  int
		Type      string
		Status    string
		Notes     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
	result := db.Raw(`
		SELECT name, capacity, type, status, notes, created_at, updated_at
		FROM slots
		WHERE id = ?
	`, slotID.Bytes()).Scan(&row)
	if result.Error != nil {
		return GetSlotQueryResponse{}, errs.NewStorageFailureError("slots.read", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetSlotQueryResponse{}, errs.NewObjectNotFoundError("slot", slotID.String())
	}

	response := GetSlotQueryResponse{
		ID:            slotID,
		Name:          row.Name,
		Capacity:      row.Capacity,
		Type:          kernel.LechonType(row.Type),
		Status:        row.Status,
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		CurrentOrders: make([]kernel.UUID, 0),
		History:       make([]SlotHistoryItem, 0),
	}

	if response.CurrentOrders, err = h.occupants(db, slotID); err != nil {
		return GetSlotQueryResponse{}, err
	}
	if response.History, err = h.history(db, slotID); err != nil {
		return GetSlotQueryResponse{}, err
	}

	occupancy := len(response.CurrentOrders)
	response.AvailableCapacity = max(row.Capacity-occupancy, 0)
	response.CanAcceptOrders = row.Status == slot.StatusAvailable.String() && occupancy < row.Capacity

	return response, nil
}

func (h GetSlotQueryHandler) occupants(db *gorm.DB, slotID kernel.UUID) ([]kernel.UUID, error) {
	rows, err := db.Raw(`
		SELECT order_id
		FROM slot_occupants
		WHERE slot_id = ?
		ORDER BY position
	`, slotID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewStorageFailureError("slot_occupants.read", err)
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, errs.NewStorageFailureError("slot_occupants.read", err)
		}
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, errs.NewStorageFailureError("slot_occupants.decode", idErr)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageFailureError("slot_occupants.read", err)
	}
	return ids, nil
}

func (h GetSlotQueryHandler) history(db *gorm.DB, slotID kernel.UUID) ([]SlotHistoryItem, error) {
	rows, err := db.Raw(`
		SELECT id, order_id, start_cooking, end_cooking
		FROM slot_history
		WHERE slot_id = ?
		ORDER BY start_cooking, id
	`, slotID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewStorageFailureError("slot_history.read", err)
	}
	defer rows.Close()

	items := make([]SlotHistoryItem, 0)
	for rows.Next() {
		var (
			id, orderID uuid.UUID
			item        SlotHistoryItem
		)
		if err = rows.Scan(&id, &orderID, &item.StartCooking, &item.EndCooking); err != nil {
			return nil, errs.NewStorageFailureError("slot_history.read", err)
		}

		var decodeErr error
		if item.ID, decodeErr = kernel.UUIDFromBytes(id[:]); decodeErr != nil {
			return nil, errs.NewStorageFailureError("slot_history.decode", decodeErr)
		}
		if item.OrderID, decodeErr = kernel.UUIDFromBytes(orderID[:]); decodeErr != nil {
			return nil, errs.NewStorageFailureError("slot_history.decode", decodeErr)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageFailureError("slot_history.read", err)
	}
	return items, nil
}
