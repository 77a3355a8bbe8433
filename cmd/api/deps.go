package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wisewallet/internal/domain/record"
	"wisewallet/internal/domain/summary"
	"wisewallet/internal/infrastructure/amqp"
	"wisewallet/internal/infrastructure/memory"
	"wisewallet/internal/infrastructure/postgres"
	httphandlers "wisewallet/internal/interfaces/http"
	"wisewallet/internal/shared/auth"
	"wisewallet/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB        *postgres.DB
	Publisher *amqp.Publisher

	// Handlers
	IncomeHandler  *httphandlers.RecordHandler
	ExpenseHandler *httphandlers.RecordHandler
	SummaryHandler *httphandlers.SummaryHandler
	HealthHandler  *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	var repo record.Repository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		repo = memory.NewRecordRepository()
		logger.Warn("using in-memory storage; records are lost on restart")
	default:
		connStr := cfg.Database.ConnectionString()
		if cfg.Database.Migrate {
			if err := postgres.Migrate(connStr); err != nil {
				return nil, err
			}
			logger.Info("database migrations applied")
		}

		db, err := postgres.New(ctx, connStr, postgres.DefaultPool)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.DBName)

		deps.DB = db
		repo = postgres.NewRecordRepository(db)
	}

	var publisher record.Publisher = record.NopPublisher{}
	if cfg.AMQP.URL != "" {
		p, err := amqp.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, logger)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("init event publisher: %w", err)
		}
		logger.Info("publishing record events", "exchange", cfg.AMQP.Exchange)
		deps.Publisher = p
		publisher = p
	}

	// Initialize domain services
	incomeService := record.NewService(record.Income, repo, publisher, logger)
	expenseService := record.NewService(record.Expense, repo, publisher, logger)
	summaryService := summary.NewService(incomeService, expenseService)

	deps.JWT = auth.NewJWT(cfg.JWT.Secret)
	deps.IncomeHandler = httphandlers.NewRecordHandler(incomeService, logger)
	deps.ExpenseHandler = httphandlers.NewRecordHandler(expenseService, logger)
	deps.SummaryHandler = httphandlers.NewSummaryHandler(summaryService, logger)
	deps.HealthHandler = httphandlers.NewHealthHandler(repo, logger)

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
