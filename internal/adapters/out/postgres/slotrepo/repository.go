package slotrepo

import (
	"context"

	"lechon/internal/adapters/out/postgres/pgerr"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/slot"
	"lechon/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlotRepository implements ports.SlotRepository using GORM.
type GormSlotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects saved aggregates so their events can be published after commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSlotRepository(db *gorm.DB, tracker aggregateTracker) *GormSlotRepository {
	return &GormSlotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the slot with its occupants and history. A taken name yields
// errs.ErrObjectAlreadyExists.
func (r *GormSlotRepository) Add(ctx context.Context, aggregate *slot.Slot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return pgerr.Map("slots.add", "slot", dto.Name, err)
	}
	if err := writeChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the slot row, replaces its occupants and upserts its history.
func (r *GormSlotRepository) Update(ctx context.Context, aggregate *slot.Slot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&SlotDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":       dto.Name,
		"capacity":   dto.Capacity,
		"type":       dto.Type,
		"status":     dto.Status,
		"notes":      dto.Notes,
		"updated_at": dto.UpdatedAt,
	})
	if result.Error != nil {
		return pgerr.Map("slots.update", "slot", dto.Name, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("slot", aggregate.ID().String())
	}

	if err := db.Where("slot_id = ?", dto.ID).Delete(&OccupantDTO{}).Error; err != nil {
		return pgerr.Map("slot_occupants.delete", "slot", aggregate.ID().String(), err)
	}
	if err := writeChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a slot without locking it.
func (r *GormSlotRepository) Get(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate loads a slot with SELECT ... FOR UPDATE. The lock is held until the
// surrounding transaction ends; outside a transaction it is released immediately.
func (r *GormSlotRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*slot.Slot, error) {
	return r.get(ctx, id, true)
}

// GetAllForUpdate locks every slot in id order.
func (r *GormSlotRepository) GetAllForUpdate(ctx context.Context) ([]*slot.Slot, error) {
	var dtos []SlotDTO
	err := withChildren(r.db.WithContext(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Map("slots.get_all", "slot", "all", err)
	}

	slots := make([]*slot.Slot, 0, len(dtos))
	for _, dto := range dtos {
		s, decodeErr := toDomain(dto)
		if decodeErr != nil {
			return nil, errs.NewStorageFailureError("slots.decode", decodeErr)
		}
		slots = append(slots, s)
	}

	return slots, nil
}

// Delete removes the slot. Occupants and history go with it.
func (r *GormSlotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&SlotDTO{})
	if result.Error != nil {
		return pgerr.Map("slots.delete", "slot", id.String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("slot", id.String())
	}

	return nil
}

func (r *GormSlotRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*slot.Slot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := withChildren(r.db.WithContext(ctx))
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto SlotDTO
	if err := query.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Map("slots.get", "slot", id.String(), err)
	}

	s, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("slots.decode", err)
	}
	return s, nil
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Occupants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_cooking, id")
		})
}

func writeChildren(db *gorm.DB, dto SlotDTO) error {
	if len(dto.Occupants) > 0 {
		if err := db.Create(&dto.Occupants).Error; err != nil {
			return pgerr.Map("slot_occupants.insert", "slot occupant", dto.ID.String(), err)
		}
	}

	if len(dto.History) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"end_cooking"}),
		}).Create(&dto.History).Error
		if err != nil {
			return pgerr.Map("slot_history.upsert", "slot", dto.ID.String(), err)
		}
	}

	return nil
}
