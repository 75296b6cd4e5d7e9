package tours_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"toursync/internal/repositories"
	"toursync/internal/services"
)

var Module = fx.Provide(
	provideTourRepo, provideTourService)

func provideTourRepo(db *gorm.DB) repositories.TourRepository {
	return repositories.NewTourRepository(db)
}

func provideTourService(tourRepo repositories.TourRepository, arctic services.ArcticClientInterface) services.TourServiceInterface {
	return services.NewTourService(tourRepo, arctic)
}
