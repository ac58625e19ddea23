package middleware

import (
	"go.uber.org/fx"

	"fpm-inspections-core/internal/shared/middleware/security"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	fx.Provide(security.CORSMiddleware),
)
