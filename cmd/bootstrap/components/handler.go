package components

import (
	"invoice-dashboard/internal/handler"
	"invoice-dashboard/internal/handler/api"
	"invoice-dashboard/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewInvoiceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
