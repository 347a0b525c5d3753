package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "lechon/internal/adapters/in/http"
	"lechon/internal/adapters/out/events"
	"lechon/internal/adapters/out/kafka"
	"lechon/internal/adapters/out/postgres"
	"lechon/internal/adapters/out/ws"
	"lechon/internal/core/application/usecases/commands"
	"lechon/internal/core/application/usecases/queries"
	"lechon/internal/core/domain/model/kernel"
	"lechon/internal/jobs"
	"lechon/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      kernel.Clock
	registry   *prometheus.Registry
	metrics    *metrics.SlotMetrics
	hub        *ws.Hub
	producer   *kafka.SlotEventProducer
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	slotMetrics, err := metrics.NewSlotMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	hub := ws.NewHub(logger)
	publisher := events.NewFanout(slotMetrics, logger).Add("websocket", hub)

	var producer *kafka.SlotEventProducer
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		producer, err = kafka.NewSlotEventProducer(brokers, cfg.KafkaSlotEventsTopic, logger)
		if err != nil {
			return nil, err
		}
		publisher.Add("kafka", producer)
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		clock:      kernel.SystemClock{},
		registry:   registry,
		metrics:    slotMetrics,
		hub:        hub,
		producer:   producer,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
	}, nil
}

// Hub returns the websocket hub; the caller runs it.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// Close releases the Kafka producer, if any.
func (c *CompositionRoot) Close() error {
	if c.producer == nil {
		return nil
	}
	return c.producer.Close()
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) slotUoW() commands.SlotUoWFactory {
	return FuncSlotUoWFactory(func() commands.SlotUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAssignOrderToSlotCommandHandler() commands.AssignOrderToSlotCommandHandler {
	return commands.NewAssignOrderToSlotCommandHandler(c.uow(), c.clock, c.metrics)
}

func (c *CompositionRoot) CreateUnassignOrderFromSlotCommandHandler() commands.UnassignOrderFromSlotCommandHandler {
	return commands.NewUnassignOrderFromSlotCommandHandler(c.uow(), c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateReconcileAssignmentsCommandHandler() commands.ReconcileAssignmentsCommandHandler {
	return commands.NewReconcileAssignmentsCommandHandler(c.uow(), c.clock, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCreateSlotCommandHandler() commands.CreateSlotCommandHandler {
	return commands.NewCreateSlotCommandHandler(c.slotUoW(), c.clock)
}

func (c *CompositionRoot) CreateUpdateSlotCommandHandler() commands.UpdateSlotCommandHandler {
	return commands.NewUpdateSlotCommandHandler(c.slotUoW(), c.clock)
}

func (c *CompositionRoot) CreateChangeSlotStatusCommandHandler() commands.ChangeSlotStatusCommandHandler {
	return commands.NewChangeSlotStatusCommandHandler(c.slotUoW(), c.clock)
}

func (c *CompositionRoot) CreateDeleteSlotCommandHandler() commands.DeleteSlotCommandHandler {
	return commands.NewDeleteSlotCommandHandler(c.slotUoW())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoW(), c.clock)
}

func (c *CompositionRoot) CreateGetSlotQueryHandler() queries.GetSlotQueryHandler {
	return queries.NewGetSlotQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCookingQueryHandler() queries.GetOrderCookingQueryHandler {
	return queries.NewGetOrderCookingQueryHandler(c.gormDB)
}

// CreateRouter builds the HTTP surface over every use case.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateSlot:            c.CreateCreateSlotCommandHandler(),
		UpdateSlot:            c.CreateUpdateSlotCommandHandler(),
		ChangeSlotStatus:      c.CreateChangeSlotStatusCommandHandler(),
		DeleteSlot:            c.CreateDeleteSlotCommandHandler(),
		AssignOrderToSlot:     c.CreateAssignOrderToSlotCommandHandler(),
		UnassignOrderFromSlot: c.CreateUnassignOrderFromSlotCommandHandler(),
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ReconcileAssignments:  c.CreateReconcileAssignmentsCommandHandler(),
		GetSlot:               c.CreateGetSlotQueryHandler(),
		GetOrderCooking:       c.CreateGetOrderCookingQueryHandler(),
	})

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		JWTSecret: c.cfg.JWTSecret,
		Gatherer:  c.registry,
		Hub:       c.hub,
		Logger:    c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileAssignmentsCommandHandler(), c.cfg.ReconcileSchedule, c.logger)
}

type FuncSlotUoWFactory func() commands.SlotUoW

func (f FuncSlotUoWFactory) Create() commands.SlotUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
