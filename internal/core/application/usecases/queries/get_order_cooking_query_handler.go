package queries

import (
	"context"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderCookingQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderCookingQueryHandler(db *gorm.DB) GetOrderCookingQueryHandler {
	return GetOrderCookingQueryHandler{db: db}
}

func (h GetOrderCookingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderCookingQuery,
) (GetOrderCookingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderCookingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromString(query.OrderID())
	if err != nil {
		return GetOrderCookingQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("order", query.OrderID(), err)
	}

	var row struct {
		Status      string
		SlotID      *uuid.UUID
		CookingDate *time.Time
		CookedDate  *time.Time
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT status, slot_id, cooking_date, cooked_date
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Scan(&row)
	if result.Error != nil {
		return GetOrderCookingQueryResponse{}, errs.NewStorageFailureError("orders.read", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetOrderCookingQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	response := GetOrderCookingQueryResponse{
		OrderID:     orderID,
		Status:      row.Status,
		CookingDate: row.CookingDate,
		CookedDate:  row.CookedDate,
	}
	if row.SlotID != nil {
		slotID, idErr := kernel.UUIDFromBytes(row.SlotID[:])
		if idErr != nil {
			return GetOrderCookingQueryResponse{}, errs.NewStorageFailureError("orders.decode", idErr)
		}
		response.SlotID = &slotID
	}

	return response, nil
}
