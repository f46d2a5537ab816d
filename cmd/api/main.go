package main

import (
	"context"
	"flag"
	"log"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juristack/lawoffice-backend/internal/api/rest"
	"github.com/juristack/lawoffice-backend/internal/infrastructure/config"
	"github.com/juristack/lawoffice-backend/internal/infrastructure/database"
	"github.com/juristack/lawoffice-backend/internal/infrastructure/repository"
	appointmentsvc "github.com/juristack/lawoffice-backend/internal/service/appointment"
	caseopssvc "github.com/juristack/lawoffice-backend/internal/service/caseops"
	clientsvc "github.com/juristack/lawoffice-backend/internal/service/client"
	documentsvc "github.com/juristack/lawoffice-backend/internal/service/document"
	ledgersvc "github.com/juristack/lawoffice-backend/internal/service/ledger"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to setup logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("application failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Environment == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if err := zapCfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, err
	}
	return zapCfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}

	ledgerPolicy, err := cfg.Validation.LedgerPolicy()
	if err != nil {
		return err
	}

	clientRepo := repository.NewClientRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	ledgerRepo := repository.NewLedgerRepository(pool)

	clients := clientsvc.NewService(clientRepo, logger)

	clientActive := caseopssvc.ClientCheckerFunc(func(ctx context.Context, id uuid.UUID) (bool, error) {
		c, err := clients.Get(ctx, id)
		if err != nil {
			return false, err
		}
		return c.Active, nil
	})
	cases := caseopssvc.NewService(caseRepo, clientActive, logger)

	caseClient := func(ctx context.Context, caseID uuid.UUID) (uuid.UUID, error) {
		c, err := cases.Get(ctx, caseID)
		if err != nil {
			return uuid.Nil, err
		}
		return c.ClientID, nil
	}

	services := &rest.Services{
		Clients: clients,
		Cases:   cases,
		Documents: documentsvc.NewService(
			documentRepo, documentsvc.CaseResolverFunc(caseClient), cfg.Validation.FilePolicy(), logger),
		Appointments: appointmentsvc.NewService(
			appointmentRepo, appointmentsvc.CaseResolverFunc(caseClient), cfg.Validation.AppointmentPolicy(), logger),
		Ledger: ledgersvc.NewService(
			ledgerRepo, ledgersvc.CaseResolverFunc(caseClient), ledgerPolicy, logger),
	}

	server := rest.NewServer(cfg, services, pool, logger)
	return server.Start()
}
