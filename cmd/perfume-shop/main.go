package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/console"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/billfile"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/db"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/messaging"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/metrics"
	outboxinfra "github.com/RodolfoDevApp/eventshop-billing-go/internal/infrastructure/outbox"
	"github.com/RodolfoDevApp/eventshop-billing-go/internal/seed"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting perfume shop billing, bills go to %s", cfg.BillDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog
	seedFile := seed.Default()
	if cfg.SeedCatalogFile != "" {
		f, err := seed.LoadFile(cfg.SeedCatalogFile)
		if err != nil {
			log.Fatalf("failed to load seed catalog: %v", err)
		}
		seedFile = f
	}
	catalog, err := seedFile.Build()
	if err != nil {
		log.Fatalf("failed to build catalog: %v", err)
	}

	// Outbox + bill storage
	var outboxRepo domain.OutboxRepository
	var bills domain.BillWriter = billfile.NewWriter(cfg.BillDir)
	if cfg.PgDsn != "" {
		dbConn, err := sql.Open("pgx", cfg.PgDsn)
		if err != nil {
			log.Fatalf("failed to open postgres: %v", err)
		}
		defer dbConn.Close()

		if err := dbConn.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping postgres: %v", err)
		}
		if err := db.EnsureSchema(ctx, dbConn); err != nil {
			log.Fatalf("failed to prepare schema: %v", err)
		}
		outboxRepo = db.NewPgOutboxRepository(dbConn)
		bills = billfile.NewChain(bills, db.NewPgBillArchive(dbConn))
		log.Printf("Using postgres outbox and bill archive")
	} else {
		outboxRepo = db.NewMemoryOutboxRepository()
		log.Printf("PG_DSN not set, outbox kept in memory")
	}

	// Publisher
	var publisher outboxinfra.Publisher
	if cfg.RabbitUri != "" {
		rabbit := messaging.NewRabbitMqPublisher(messaging.RabbitMqOptions{
			URI:          cfg.RabbitUri,
			ExchangeName: cfg.RabbitExchange,
		})
		defer rabbit.Close()
		publisher = rabbit
		log.Printf("Publishing events to exchange %s", cfg.RabbitExchange)
	} else {
		publisher = messaging.NewLogPublisher(log.Default())
	}

	// Outbox writer + dispatcher + scheduler
	outboxWriter := application.NewOutboxWriter(outboxRepo)
	dispatcher := outboxinfra.NewDispatcher(
		outboxRepo,
		publisher,
		cfg.OutboxMaxRetry,
		cfg.OutboxBatchSize,
	)
	scheduler := outboxinfra.NewScheduler(dispatcher, cfg.OutboxIntervalSec)

	salesMetrics := metrics.NewSalesMetrics("billing")
	for _, it := range catalog.Items() {
		salesMetrics.StockLevel(it.Name(), it.Stock())
	}

	// Application services
	checkoutSvc := application.NewCheckoutService(catalog, bills, outboxWriter, salesMetrics, cfg.StoreAddress)
	inventorySvc := application.NewInventoryService(catalog, outboxWriter, salesMetrics)
	session := console.NewSession(os.Stdin, os.Stdout, checkoutSvc, inventorySvc, cfg.Customer, cfg.Admin)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return session.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Session ended with error: %v", err)
	}
	log.Printf("Shutting down perfume shop billing")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	scheduler.Drain(shutdownCtx)

	if cfg.MetricsTextfile != "" {
		if err := salesMetrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Printf("failed to write metrics textfile: %v", err)
		}
	}
}
