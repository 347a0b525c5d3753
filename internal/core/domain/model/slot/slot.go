package slot

import (
	"errors"
	"slices"
	"strings"
	"time"

	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/pkg/errs"
	"lechon/internal/pkg/guard"
)

const (
	maxNameLength  = 50
	maxNotesLength = 200
)

var (
	// ErrSlotIsNotConstructed is returned when a Slot was not created through NewSlot or RestoreSlot.
	ErrSlotIsNotConstructed = errors.New("Slot must be created via NewSlot constructor")

	// ErrSlotUnavailable is returned when an operator status (maintenance, out_of_order)
	// keeps the slot from taking orders.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrCapacityExceeded is returned when the slot already holds capacity orders.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")

	// ErrSlotNotEmpty is returned when deleting a slot that still has occupants.
	ErrSlotNotEmpty = errors.New("slot still has orders assigned")
)

// Slot is the aggregate root for a cooking resource.
//
// The aggregate owns its occupants and its cooking history. Every successful
// mutation re-derives the status (unless an operator status is set) and records
// an Event that is drained with PullEvents.
//
// Example usage:
//
//	s, err := slot.NewSlot(kernel.NewUUID(), "Pit 1", 2, kernel.WholePig, "", now)
//	if err != nil {
//	    return err
//	}
//	if err := s.Assign(orderID, now); err != nil {
//	    return err // ErrSlotUnavailable or ErrCapacityExceeded
//	}
type Slot struct {
	id            kernel.UUID
	name          string
	capacity      int
	slotType      kernel.LechonType
	status        Status
	notes         string
	currentOrders []kernel.UUID
	history       []*HistoryEntry
	createdAt     time.Time
	updatedAt     time.Time

	events []Event
	guard  guard.ConstructorGuard
}

// NewSlot creates an empty, available slot.
func NewSlot(
	id kernel.UUID,
	name string,
	capacity int,
	slotType kernel.LechonType,
	notes string,
	now time.Time,
) (*Slot, error) {
	s := &Slot{
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setCapacity(capacity),
		s.setType(slotType),
		s.setNotes(notes),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSlotParams carries persisted slot state back into the domain.
// CurrentOrders keeps its stored order; History is expected in startCooking order.
// A zero UpdatedAt falls back to CreatedAt.
type RestoreSlotParams struct {
	ID            kernel.UUID
	Name          string
	Capacity      int
	Type          kernel.LechonType
	Status        Status
	Notes         string
	CurrentOrders []kernel.UUID
	History       []*HistoryEntry
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreSlot rebuilds a slot loaded from storage.
//
// Occupancy is not checked against capacity here: rows written outside the
// service may break that rule, and reconciliation still has to load them.
func RestoreSlot(p RestoreSlotParams) (*Slot, error) {
	s := &Slot{
		currentOrders: slices.Clone(p.CurrentOrders),
		history:       slices.Clone(p.History),
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
		guard:         guard.NewConstructorGuard(),
	}
	if s.updatedAt.IsZero() {
		s.updatedAt = p.CreatedAt
	}

	if err := errors.Join(
		s.setID(p.ID),
		s.setName(p.Name),
		s.setCapacity(p.Capacity),
		s.setType(p.Type),
		s.setNotes(p.Notes),
		s.setStatus(p.Status),
		validateOrderIDs(p.CurrentOrders),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Slot) Validate() error {
	if s == nil {
		return ErrSlotIsNotConstructed
	}
	return s.guard.Validate(ErrSlotIsNotConstructed)
}

func (s *Slot) IsEqual(other *Slot) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Slot) ID() kernel.UUID {
	return s.id
}

func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) Capacity() int {
	return s.capacity
}

func (s *Slot) Type() kernel.LechonType {
	return s.slotType
}

func (s *Slot) Status() Status {
	return s.status
}

func (s *Slot) Notes() string {
	return s.notes
}

func (s *Slot) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt is the time of the last change to the slot, its occupants or its history.
func (s *Slot) UpdatedAt() time.Time {
	return s.updatedAt
}

// CurrentOrders returns the occupants in assignment order.
func (s *Slot) CurrentOrders() []kernel.UUID {
	return slices.Clone(s.currentOrders)
}

// History returns every cooking session, oldest first.
func (s *Slot) History() []*HistoryEntry {
	return slices.Clone(s.history)
}

func (s *Slot) Occupancy() int {
	return len(s.currentOrders)
}

// AvailableCapacity is max(0, capacity - occupancy).
func (s *Slot) AvailableCapacity() int {
	return max(0, s.capacity-len(s.currentOrders))
}

// CanAcceptOrders holds when the slot is available and below capacity.
func (s *Slot) CanAcceptOrders() bool {
	return s.status == StatusAvailable && len(s.currentOrders) < s.capacity
}

// CheckCanAccept explains a false CanAcceptOrders: ErrSlotUnavailable for an
// operator status, ErrCapacityExceeded for a full slot.
func (s *Slot) CheckCanAccept() error {
	if s.CanAcceptOrders() {
		return nil
	}
	if !s.status.IsDerived() {
		return ErrSlotUnavailable
	}
	return ErrCapacityExceeded
}

// Contains reports whether orderID is a current occupant.
func (s *Slot) Contains(orderID kernel.UUID) bool {
	return s.indexOf(orderID) >= 0
}

// OpenEntryFor returns the most recently opened session of orderID, or nil.
func (s *Slot) OpenEntryFor(orderID kernel.UUID) *HistoryEntry {
	var latest *HistoryEntry
	for _, h := range s.history {
		if !h.IsOpen() || !h.orderID.IsEqual(orderID) {
			continue
		}
		if latest == nil || !h.startCooking.Before(latest.startCooking) {
			latest = h
		}
	}
	return latest
}

// Assign adds orderID as an occupant and opens a cooking session for it.
func (s *Slot) Assign(orderID kernel.UUID, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := s.CheckCanAccept(); err != nil {
		return err
	}
	if s.Contains(orderID) || s.OpenEntryFor(orderID) != nil {
		return order.ErrOrderAlreadyAssigned
	}

	entry, err := NewHistoryEntry(kernel.NewUUID(), orderID, now)
	if err != nil {
		return err
	}

	s.currentOrders = append(s.currentOrders, orderID)
	s.history = append(s.history, entry)
	s.rederiveStatus()
	s.touch(now)
	s.record(EventOrderAssigned, &orderID, now)
	return nil
}

// ReleaseResult reports what Release found for the order.
type ReleaseResult struct {
	// WasOccupant is false when the order was not among the current orders.
	WasOccupant bool
	// OpenEntries counts the open sessions found for the order before closing one.
	OpenEntries int
}

// Release removes orderID from the occupants and closes its most recent open
// session. An order that is not an occupant is tolerated so that an order left
// pointing at this slot can still be released; the result says what was found.
func (s *Slot) Release(orderID kernel.UUID, now time.Time) (ReleaseResult, error) {
	if err := orderID.Validate(); err != nil {
		return ReleaseResult{}, err
	}

	var result ReleaseResult
	if i := s.indexOf(orderID); i >= 0 {
		s.currentOrders = slices.Delete(s.currentOrders, i, i+1)
		result.WasOccupant = true
	}

	for _, h := range s.history {
		if h.IsOpen() && h.orderID.IsEqual(orderID) {
			result.OpenEntries++
		}
	}
	if entry := s.OpenEntryFor(orderID); entry != nil {
		entry.close(now)
	}

	s.rederiveStatus()
	s.touch(now)
	s.record(EventOrderUnassigned, &orderID, now)
	return result, nil
}

// ChangeStatus applies an operator transition. Occupied cannot be set directly;
// asking for available re-derives the status, so a full slot comes back occupied.
// Occupants are kept.
func (s *Slot) ChangeStatus(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == StatusOccupied {
		return errs.NewValueIsInvalidError("status occupied is derived from occupancy")
	}

	previous := s.status
	if target == StatusAvailable {
		s.status = DeriveStatus(len(s.currentOrders), s.capacity)
	} else {
		s.status = target
	}

	if s.status != previous {
		s.touch(now)
		s.record(EventSlotStatusChanged, nil, now)
	}
	return nil
}

// Update replaces the operator-editable attributes. Capacity cannot drop below the
// current occupancy. The status is re-derived against the new capacity, and a
// slot_status_changed event is recorded whenever anything changed.
func (s *Slot) Update(name string, capacity int, slotType kernel.LechonType, notes string, now time.Time) error {
	if capacity < len(s.currentOrders) {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, len(s.currentOrders), "unbounded")
	}

	var edited Slot
	if err := errors.Join(
		edited.setName(name),
		edited.setCapacity(capacity),
		edited.setType(slotType),
		edited.setNotes(notes),
	); err != nil {
		return err
	}

	changed := edited.name != s.name || edited.capacity != s.capacity ||
		edited.slotType != s.slotType || edited.notes != s.notes
	s.name, s.capacity, s.slotType, s.notes = edited.name, edited.capacity, edited.slotType, edited.notes

	previous := s.status
	s.rederiveStatus()
	if !changed && s.status == previous {
		return nil
	}

	s.touch(now)
	s.record(EventSlotStatusChanged, nil, now)
	return nil
}

// ReconcileStatus re-derives the status of an available/occupied slot and
// reports whether it changed.
func (s *Slot) ReconcileStatus(now time.Time) bool {
	previous := s.status
	s.rederiveStatus()
	if s.status == previous {
		return false
	}
	s.touch(now)
	s.record(EventSlotStatusChanged, nil, now)
	return true
}

// RepairHistory makes the open sessions match the occupants. Sessions of orders
// that are no longer occupants are closed at now. An occupant without an open
// session gets one starting at startedAt(orderID), or at now when that is zero or
// later than now. It reports whether the history changed.
func (s *Slot) RepairHistory(now time.Time, startedAt func(orderID kernel.UUID) time.Time) (bool, error) {
	changed := false
	for _, h := range s.history {
		if h.IsOpen() && !s.Contains(h.orderID) {
			h.close(now)
			changed = true
		}
	}

	for _, orderID := range s.currentOrders {
		if s.OpenEntryFor(orderID) != nil {
			continue
		}

		start := now
		if startedAt != nil {
			if t := startedAt(orderID); !t.IsZero() && t.Before(now) {
				start = t
			}
		}
		entry, err := NewHistoryEntry(kernel.NewUUID(), orderID, start)
		if err != nil {
			return false, err
		}
		s.history = append(s.history, entry)
		changed = true
	}

	if changed {
		slices.SortStableFunc(s.history, func(a, b *HistoryEntry) int {
			return a.startCooking.Compare(b.startCooking)
		})
		s.touch(now)
	}
	return changed, nil
}

// CheckCanDelete returns ErrSlotNotEmpty while the slot has occupants.
func (s *Slot) CheckCanDelete() error {
	if len(s.currentOrders) > 0 {
		return ErrSlotNotEmpty
	}
	return nil
}

// PullEvents returns and clears the events recorded since the last call.
func (s *Slot) PullEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

func (s *Slot) touch(now time.Time) {
	if now.After(s.updatedAt) {
		s.updatedAt = now
	}
}

func (s *Slot) rederiveStatus() {
	if s.status.IsDerived() {
		s.status = DeriveStatus(len(s.currentOrders), s.capacity)
	}
}

func (s *Slot) record(t EventType, orderID *kernel.UUID, now time.Time) {
	var oid *kernel.UUID
	if orderID != nil {
		id := *orderID
		oid = &id
	}
	s.events = append(s.events, Event{
		Type:       t,
		SlotID:     s.id,
		OrderID:    oid,
		Status:     s.status,
		Occupancy:  len(s.currentOrders),
		Capacity:   s.capacity,
		OccurredAt: now,
	})
}

func (s *Slot) indexOf(orderID kernel.UUID) int {
	return slices.IndexFunc(s.currentOrders, func(id kernel.UUID) bool {
		return id.IsEqual(orderID)
	})
}

func (s *Slot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Slot) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := len([]rune(name)); n > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, maxNameLength)
	}
	s.name = name
	return nil
}

func (s *Slot) setCapacity(capacity int) error {
	if capacity < 1 {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, 1, "unbounded")
	}
	s.capacity = capacity
	return nil
}

func (s *Slot) setType(t kernel.LechonType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.slotType = t
	return nil
}

func (s *Slot) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if n := len([]rune(notes)); n > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, maxNotesLength)
	}
	s.notes = notes
	return nil
}

func (s *Slot) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func validateOrderIDs(ids []kernel.UUID) error {
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if slices.IndexFunc(ids[:i], id.IsEqual) >= 0 {
			return errs.NewValueIsInvalidError("current orders contain duplicate " + id.String())
		}
	}
	return nil
}
