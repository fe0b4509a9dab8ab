//go:build wireinject
// +build wireinject

package di

import (
	"codefolio/internal"
	"codefolio/internal/controllers"
	"codefolio/internal/persistence"
	"codefolio/internal/providers"
	"codefolio/internal/services"
	"codefolio/internal/sources"
	"codefolio/internal/store"
	"codefolio/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewClock,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewHttpClientProvider,

		sources.NewDeps,
		sources.NewContestRegistry,
		sources.NewProfileRegistry,
		store.NewProfileStore,
		services.NewResultCache,
		services.NewContestService,
		services.NewProfileService,
		persistence.NewProfileScheduler,

		controllers.NewContestController,
		controllers.NewProfileController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
