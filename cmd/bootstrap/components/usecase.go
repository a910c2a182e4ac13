package components

import (
	"invoice-dashboard/internal/pkg/clock"
	"invoice-dashboard/internal/usecase"
	"invoice-dashboard/internal/usecase/commands"
	"invoice-dashboard/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewInvoiceCommands,
		commands.NewAuthCommands,
		queries.NewInvoiceQueries,
		queries.NewCustomerQueries,
		queries.NewUserQueries,
		usecase.NewTokenValidator,
	),
)
