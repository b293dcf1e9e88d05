//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"shoutd/internal"
	"shoutd/internal/controllers"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/services"
	"shoutd/internal/statistic"
	"shoutd/internal/statistic/interfaces"
	"shoutd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		provideLogger,
		providers.NewSettingsProvider,
		services.NewStatsStore,
		wire.Bind(new(providers.StatsSource), new(*models.StatsStore)),
		wire.Bind(new(interfaces.SnapshotterInterface), new(*models.StatsStore)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		provideCompressor,
		provideJournal,
		statistic.NewFileManager,
		services.NewShoutoutService,
		wire.Bind(new(services.ShoutoutServiceInterface), new(*services.ShoutoutService)),
		wire.Bind(new(interfaces.PersisterInterface), new(*services.ShoutoutService)),

		internal.NewStdConsole,
		wire.Bind(new(interfaces.Broadcaster), new(*internal.Console)),
		statistic.NewScheduler,
		wire.Bind(new(interfaces.LifecycleInterface), new(*statistic.Scheduler)),

		controllers.NewCommandController,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
