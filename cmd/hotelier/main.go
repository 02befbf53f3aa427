package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/app/commands"
	guestapp "hotelier/internal/app/handlers/guests"
	reservationapp "hotelier/internal/app/handlers/reservations"
	roomapp "hotelier/internal/app/handlers/rooms"
	"hotelier/internal/app/middleware"
	appoutbox "hotelier/internal/app/outbox"
	"hotelier/internal/app/queries"
	"hotelier/internal/app/support"
	"hotelier/internal/app/uow"
	"hotelier/internal/domain/pricing"
	"hotelier/internal/domain/reservation"
	domainroom "hotelier/internal/domain/room"
	"hotelier/internal/domain/shared/money"
	kafkabroker "hotelier/internal/infra/broker/kafka"
	"hotelier/internal/infra/config"
	mongodb "hotelier/internal/infra/db/mongo"
	ginserver "hotelier/internal/infra/http/gin"
	"hotelier/internal/infra/obs"
	infraoutbox "hotelier/internal/infra/outbox"
	"hotelier/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("ROOM_FIXTURES", "")
	if fixturesPath == "" {
		fixturesPath = filepath.Join("data", "rooms.json")
	}
	if err := app.loadRoomFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("room fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	rooms    domainroom.Repository
	worker   *infraoutbox.Worker
	ready    func() error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		uowFactory uow.UoWFactory
		roomRepo   domainroom.Repository
		box        appoutbox.Outbox
		idStore    middleware.IdempotencyStore
		worker     *infraoutbox.Worker
		ready      = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		rooms := mongodb.NewRoomRepository(client.DB)
		guests := mongodb.NewGuestRepository(client.DB)
		reservations := mongodb.NewReservationRepository(client.DB)
		store := infraoutbox.NewStore(client.DB)
		uowFactory = mongodb.Factory{
			DB:              client.DB,
			RoomRepo:        rooms,
			GuestRepo:       guests,
			ReservationRepo: reservations,
		}
		roomRepo = rooms
		box = store
		idStore = mongodb.NewIdempotencyStore(client.DB, cfg.IdempotencyTTL)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				ID:          uuid.NewString(),
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("KAFKA_BROKERS not set, outbox events stay queued")
		}
	default:
		rooms := memory.NewRoomRepository()
		uowFactory = memory.Factory{
			RoomRepo:        rooms,
			GuestRepo:       memory.NewGuestRepository(),
			ReservationRepo: memory.NewReservationRepository(),
		}
		roomRepo = rooms
		box = memory.NewOutbox(nil)
		idStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	}

	locks := support.NewRoomLocks()
	encoder := appoutbox.JSONEventEncoder{IDGenerator: uuid.NewString}
	calculator := pricing.Calculator{}
	policies := reservationapp.PolicySet{
		Guest: reservation.NewGuestPolicy(cfg.GuestPolicy),
		Desk:  reservation.DeskPolicy{},
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.BookReservationCommand{}.Key(), &reservationapp.BookReservationHandler{
		UoWFactory: uowFactory,
		Locks:      locks,
		Pricing:    calculator,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.ConfirmPaymentCommand{}.Key(), &reservationapp.ConfirmPaymentHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.CheckInCommand{}.Key(), &reservationapp.CheckInHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.CheckOutCommand{}.Key(), &reservationapp.CheckOutHandler{
		UoWFactory: uowFactory,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.ModifyDatesCommand{}.Key(), &reservationapp.ModifyDatesHandler{
		UoWFactory: uowFactory,
		Locks:      locks,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, reservationapp.CancelReservationCommand{}.Key(), &reservationapp.CancelReservationHandler{
		UoWFactory: uowFactory,
		Policies:   policies,
		Pricing:    calculator,
		Outbox:     box,
		Encoder:    encoder,
	})
	commands.RegisterHandler(commandBus, roomapp.RegisterRoomCommand{}.Key(), &roomapp.RegisterRoomHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, roomapp.ChangeRoomRateCommand{}.Key(), &roomapp.ChangeRoomRateHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, roomapp.MarkRoomReadyCommand{}.Key(), &roomapp.MarkRoomReadyHandler{
		UoWFactory: uowFactory,
	})
	commands.RegisterHandler(commandBus, guestapp.RegisterGuestCommand{}.Key(), &guestapp.RegisterGuestHandler{
		UoWFactory: uowFactory,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, reservationapp.GetReservationQuery{}.Key(), &reservationapp.GetReservationHandler{
		UoWFactory: uowFactory,
		Pricing:    calculator,
	})
	queries.RegisterHandler(queryBus, reservationapp.CancellationQuoteQuery{}.Key(), &reservationapp.CancellationQuoteHandler{
		UoWFactory: uowFactory,
		Policies:   policies,
		Pricing:    calculator,
	})
	queries.RegisterHandler(queryBus, roomapp.SearchAvailableRoomsQuery{}.Key(), &roomapp.SearchAvailableRoomsHandler{
		UoWFactory: uowFactory,
	})
	queries.RegisterHandler(queryBus, guestapp.GetGuestQuery{}.Key(), &guestapp.GetGuestHandler{
		UoWFactory: uowFactory,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Reservation: ginserver.ReservationHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Room: ginserver.RoomHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			Guest: ginserver.GuestHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
		},
		rooms:  roomRepo,
		worker: worker,
		ready:  ready,
	}, nil
}

type roomFixture struct {
	Number           int    `json:"number"`
	Category         string `json:"category"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
}

func (a application) loadRoomFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("room fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []roomFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	for _, fx := range fixtures {
		if _, err := a.rooms.ByNumber(ctx, domainroom.Number(fx.Number)); err == nil {
			continue
		}
		rate, err := money.New(fx.NightlyRateCents)
		if err != nil {
			logger.Error("fixture rate invalid", "room", fx.Number, "error", err)
			continue
		}
		rm, err := domainroom.New(domainroom.Number(fx.Number), fx.Category, rate, now)
		if err != nil {
			logger.Error("fixture invalid", "room", fx.Number, "error", err)
			continue
		}
		if err := a.rooms.Save(ctx, rm); err != nil {
			logger.Error("cannot store fixture room", "room", fx.Number, "error", err)
			continue
		}
		logger.Info("room fixture imported", "room", fx.Number, "category", fx.Category)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
