//go:build wireinject
// +build wireinject

package di

import (
	"DormBack/pkg/config"
	"DormBack/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Core domain
		ProvideGenerator,
		ProvideSigner,
		ProvideKeySource,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Repositories
		ProvideStorage,
		ProvidePublisher,

		// Use cases
		ProvideFixtureService,
		ProvideSeriesProcessor,
		ProvideHarnessRunner,
		ProvideRunStore,
		ProvideGenerateRunJob,
		ProvideRunQueue,
		ProvideQueueService,
		ProvideKafkaPointsHandler,

		// HTTP
		ProvideStreamHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
