package orderrepo

import (
	"context"

	"lechon/internal/adapters/out/postgres/pgerr"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/core/domain/model/order"
	"lechon/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map("orders.add", "order", aggregate.ID().String(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the assignment state of an order. A cleared slot reference is
// stored as NULL.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "slot_id", "cooking_date", "cooked_date", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Map("orders.update", "order", aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves an order and locks its row for the rest of the transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, id, true)
}

// GetAssignedOrIn locks every order with a slot reference plus the orders in ids.
func (r *GormOrderRepository) GetAssignedOrIn(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("slot_id IS NOT NULL")

	if len(ids) > 0 {
		raw := make([]uuid.UUID, 0, len(ids))
		for _, id := range ids {
			raw = append(raw, id.Bytes())
		}
		query = query.Or("id IN ?", raw)
	}

	var dtos []OrderDTO
	if err := query.Order("id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Map("orders.get_assigned", "order", "assigned", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewStorageFailureError("orders.decode", err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Map("orders.get", "order", id.String(), err)
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewStorageFailureError("orders.decode", err)
	}
	return o, nil
}
