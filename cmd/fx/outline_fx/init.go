package outline_fx

import (
	"go.uber.org/fx"

	"toursync/internal/services"
)

var Module = fx.Provide(
	provideOutlineClient)

func provideOutlineClient() services.OutlineClientInterface {
	return services.NewOutlineClient()
}
