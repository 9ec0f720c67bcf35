//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/giquina/armora-sub001/internal/bootstrap"
	"github.com/giquina/armora-sub001/internal/domain/auth"
	"github.com/giquina/armora-sub001/internal/domain/booking"
	"github.com/giquina/armora-sub001/internal/domain/risk"
	"github.com/giquina/armora-sub001/internal/infra/config"
	"github.com/giquina/armora-sub001/internal/infra/sessionstore"
	httpiface "github.com/giquina/armora-sub001/internal/interface/http"
	"github.com/giquina/armora-sub001/pkg/logger"
	"github.com/giquina/armora-sub001/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideBookingConfig,
		provideCatalog,
		provideOfficers,
		provideSessionStore,
		providePostgresPool,
		provideUserRepository,
		provideAssignmentRepository,
		provideDestinationStore,
		provideSnapshotStorage,
		providePaymentGateway,
		metrics.NewSubmissionStats,
		risk.NewAssessor,
		auth.NewService,
		booking.NewService,
		wire.Bind(new(booking.SessionStore), new(*sessionstore.MemoryStore)),
		wire.Bind(new(bootstrap.SessionSweeper), new(*sessionstore.MemoryStore)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
