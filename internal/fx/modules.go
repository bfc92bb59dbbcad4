package fx

import (
	"go.uber.org/fx"

	"github.com/sp3dr4/folio/config"
	"github.com/sp3dr4/folio/internal/application"
)

// ConfigModule provides configuration-related dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// InfrastructureModule provides the store, the post cache and the logger
var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(ProvideLogger),
	fx.Provide(ProvideStore),
	fx.Provide(ProvideRedisClient),
	fx.Provide(ProvideCache),
)

// ApplicationModule provides application service dependencies
var ApplicationModule = fx.Module("application",
	fx.Provide(ProvidePostReader),
	fx.Provide(ProvideViewCounter),
	fx.Provide(ProvideDrainer),
	fx.Provide(application.NewContentService),
	fx.Provide(application.NewAdminService),
)

// MetricsModule provides metrics-related dependencies
var MetricsModule = fx.Module("metrics",
	fx.Provide(ProvideMetricsRegistry),
)

// CoreLifecycleModule provides core lifecycle management (shared by all entrypoints)
var CoreLifecycleModule = fx.Module("core-lifecycle",
	fx.Invoke(RegisterStoreHooks),
	fx.Invoke(RegisterCacheHooks),
)

// CoreModules combines the core modules shared by all entrypoints
var CoreModules = fx.Options(
	ConfigModule,
	InfrastructureModule,
	ApplicationModule,
	MetricsModule,
	CoreLifecycleModule,
)
