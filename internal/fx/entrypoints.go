package fx

import (
	"go.uber.org/fx"

	httpFX "github.com/sp3dr4/folio/internal/fx/http"
)

// HTTPServerModules combines all modules needed for HTTP server entrypoint
var HTTPServerModules = fx.Options(
	CoreModules,
	httpFX.HTTPModule,
	httpFX.HTTPLifecycleModule,
)

// CLIModules combines the modules needed by folioctl commands. The caller
// supplies *config.Config, since flags are bound before loading.
var CLIModules = fx.Options(
	InfrastructureModule,
	ApplicationModule,
	MetricsModule,
	CoreLifecycleModule,
	fx.NopLogger,
)
