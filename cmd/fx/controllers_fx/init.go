package controllers_fx

import (
	"go.uber.org/fx"

	"toursync/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewToursController),
	fx.Provide(controllers.NewSyncController))
