package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/montero2/HERFISH-PROJECT/internal/app"
	"github.com/montero2/HERFISH-PROJECT/internal/auth"
	"github.com/montero2/HERFISH-PROJECT/internal/fulfillment"
	"github.com/montero2/HERFISH-PROJECT/internal/inventory"
	"github.com/montero2/HERFISH-PROJECT/internal/ledger"
	"github.com/montero2/HERFISH-PROJECT/internal/notify"
	"github.com/montero2/HERFISH-PROJECT/internal/observability"
	"github.com/montero2/HERFISH-PROJECT/internal/orders"
	"github.com/montero2/HERFISH-PROJECT/internal/payments"
	"github.com/montero2/HERFISH-PROJECT/internal/platform/cache"
	"github.com/montero2/HERFISH-PROJECT/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	store := ledger.NewStore()
	if cfg.SeedDemoData {
		if err := app.SeedDemoData(store); err != nil {
			logger.Error("seed demo data", slog.Any("error", err))
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics()

	// The queue is best effort: when redis is unreachable the external
	// channels are skipped and only in-app notifications are recorded.
	var (
		outbound  notify.Outbound
		inspector *asynq.Inspector
	)
	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	if _, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, external notification channels disabled", slog.Any("error", err))
	} else {
		asynqClient := asynq.NewClient(redisOpts)
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger.Warn("asynq close", slog.Any("error", err))
			}
		}()
		outbound = notify.NewQueueSender(asynqClient)
		inspector = asynq.NewInspector(redisOpts)
	}

	dispatcher := notify.NewDispatcher(store, outbound, notify.Contacts{
		EmailEnabled:     cfg.EmailEnabled,
		SMSEnabled:       cfg.SMSEnabled,
		OperatorEmail:    cfg.OperatorEmail,
		OperatorPhone:    cfg.OperatorPhone,
		DistributorEmail: cfg.DistributorEmail,
		DistributorPhone: cfg.DistributorPhone,
	}, logger, metrics)

	authService := auth.NewService(store, auth.FixedCredentials{
		OperatorEmail:       cfg.OperatorEmail,
		OperatorPassword:    cfg.OperatorPassword,
		DistributorEmail:    cfg.DistributorEmail,
		DistributorPassword: cfg.DistributorPassword,
	})
	guard := auth.NewMiddleware(authService)

	inventoryService := inventory.NewService(store)
	orderService := orders.NewService(store, dispatcher, metrics)
	paymentService := payments.NewService(store, dispatcher)
	fulfillmentService := fulfillment.NewService(store, dispatcher)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Guard:              guard,
		AuthHandler:        auth.NewHandler(logger, authService),
		InventoryHandler:   inventory.NewHandler(logger, inventoryService),
		CustomerHandler:    orders.NewHandler(logger, orderService, paymentService, inventoryService, guard),
		FulfillmentHandler: fulfillment.NewHandler(logger, fulfillmentService, orderService, guard),
		FinanceHandler:     payments.NewHandler(logger, paymentService, guard),
		NotifyHandler:      notify.NewHandler(dispatcher, guard),
		JobsHandler:        jobs.NewHandler(inspector, logger),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("herfish api listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
