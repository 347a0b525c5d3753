package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Created defines model for Created.
type Created struct {
	Id openapi_types.UUID `json:"id"`
}

// LechonType defines model for LechonType.
type LechonType string

// NewSlot defines model for NewSlot.
type NewSlot struct {
	Name     string      `json:"name"`
	Capacity int         `json:"capacity"`
	Type     *LechonType `json:"type,omitempty"`
	Notes    *string     `json:"notes,omitempty"`
}

// SlotUpdate defines model for SlotUpdate.
type SlotUpdate struct {
	Name     *string     `json:"name,omitempty"`
	Capacity *int        `json:"capacity,omitempty"`
	Type     *LechonType `json:"type,omitempty"`
	Notes    *string     `json:"notes,omitempty"`
}

// SlotStatusChange defines model for SlotStatusChange.
type SlotStatusChange struct {
	Status string `json:"status"`
}

// Assignment defines model for Assignment.
type Assignment struct {
	SlotId  string `json:"slotId"`
	OrderId string `json:"orderId"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CustomerName string `json:"customerName"`
	LechonType   string `json:"lechonType"`
}

// SlotHistoryItem defines model for SlotHistoryItem.
type SlotHistoryItem struct {
	Id           openapi_types.UUID `json:"id"`
	OrderId      openapi_types.UUID `json:"orderId"`
	StartCooking time.Time          `json:"startCooking"`
	EndCooking   *time.Time         `json:"endCooking"`
}

// Slot defines model for Slot.
type Slot struct {
	Id                openapi_types.UUID   `json:"id"`
	Name              string               `json:"name"`
	Capacity          int                  `json:"capacity"`
	Type              LechonType           `json:"type"`
	Status            string               `json:"status"`
	Notes             string               `json:"notes"`
	CurrentOrders     []openapi_types.UUID `json:"currentOrders"`
	CanAcceptOrders   bool                 `json:"canAcceptOrders"`
	AvailableCapacity int                  `json:"availableCapacity"`
	History           []SlotHistoryItem    `json:"history"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// OrderCooking defines model for OrderCooking.
type OrderCooking struct {
	OrderId     openapi_types.UUID  `json:"orderId"`
	Status      string              `json:"status"`
	SlotId      *openapi_types.UUID `json:"slotId"`
	CookingDate *time.Time          `json:"cookingDate"`
	CookedDate  *time.Time          `json:"cookedDate"`
}

// Reconciliation defines model for Reconciliation.
type Reconciliation struct {
	Repaired int `json:"repaired"`
}

// UnassignOrderFromSlotParams defines parameters for UnassignOrderFromSlot.
type UnassignOrderFromSlotParams struct {
	OrderId string `form:"orderId" json:"orderId"`
}

// CreateSlotJSONRequestBody defines body for CreateSlot for application/json ContentType.
type CreateSlotJSONRequestBody = NewSlot

// AssignOrderToSlotJSONRequestBody defines body for AssignOrderToSlot for application/json ContentType.
type AssignOrderToSlotJSONRequestBody = Assignment

// UpdateSlotJSONRequestBody defines body for UpdateSlot for application/json ContentType.
type UpdateSlotJSONRequestBody = SlotUpdate

// ChangeSlotStatusJSONRequestBody defines body for ChangeSlotStatus for application/json ContentType.
type ChangeSlotStatusJSONRequestBody = SlotStatusChange

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder
