package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/pkg/cache"
	"github.com/ghuser/storefront/pkg/config"
	"github.com/ghuser/storefront/pkg/database"
	"github.com/ghuser/storefront/pkg/events"
	"github.com/ghuser/storefront/pkg/logger"
	"github.com/ghuser/storefront/pkg/telemetry"
	shopevents "github.com/ghuser/storefront/services/shop/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		shopevents.TopicMemberJoined:   handleMemberJoined(a),
		shopevents.TopicOrderPlaced:    handleOrderPlaced(a),
		shopevents.TopicOrderCancelled: handleOrderCancelled(a),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		topic := topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
		registered = append(registered, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handleMemberJoined returns a handler for member.joined events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
func handleMemberJoined(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt shopevents.MemberJoinedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "member joined",
			"member_id", evt.MemberID, "name", evt.Name)
		return nil
	}
}

// handleOrderPlaced returns a handler for order.placed events.
// Drops the cached read model of every ordered item; the next read warms it
// with the committed stock level.
func handleOrderPlaced(a *app.Application) func(context.Context, *message.Message) error {
	itemCache := cache.NewItemCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt shopevents.OrderPlacedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		invalidateLines(ctx, a, itemCache, evt.Lines)
		a.Logger.InfoContext(ctx, "order placed",
			"order_id", evt.OrderID, "member_id", evt.MemberID, "total_price", evt.TotalPrice)
		return nil
	}
}

// handleOrderCancelled returns a handler for order.cancelled events.
func handleOrderCancelled(a *app.Application) func(context.Context, *message.Message) error {
	itemCache := cache.NewItemCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt shopevents.OrderCancelledEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		invalidateLines(ctx, a, itemCache, evt.Lines)
		a.Logger.InfoContext(ctx, "order cancelled",
			"order_id", evt.OrderID, "member_id", evt.MemberID)
		return nil
	}
}

// invalidateLines is best-effort: a failed delete only extends staleness
// until the cache TTL, so it never fails the handler.
func invalidateLines(ctx context.Context, a *app.Application, itemCache *cache.ItemCache, lines []shopevents.OrderLine) {
	for _, line := range lines {
		if err := itemCache.Delete(ctx, line.ItemID); err != nil {
			a.Logger.WarnContext(ctx, "item cache invalidation failed",
				"item_id", line.ItemID, "error", err)
		}
	}
}
