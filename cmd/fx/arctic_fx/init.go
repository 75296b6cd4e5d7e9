package arctic_fx

import (
	"go.uber.org/fx"

	"toursync/internal/services"
)

var Module = fx.Provide(
	provideArcticClient)

func provideArcticClient() services.ArcticClientInterface {
	return services.NewArcticClient()
}
