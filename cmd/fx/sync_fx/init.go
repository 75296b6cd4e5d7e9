package sync_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"toursync/internal/repositories"
	"toursync/internal/services"
)

var Module = fx.Provide(
	provideSyncMetadataRepo, provideSyncService, provideSyncScheduler)

func provideSyncMetadataRepo(db *gorm.DB) repositories.SyncMetadataRepository {
	return repositories.NewSyncMetadataRepository(db)
}

func provideSyncService(
	outline services.OutlineClientInterface,
	tourRepo repositories.TourRepository,
	metaRepo repositories.SyncMetadataRepository,
) services.SyncServiceInterface {
	return services.NewSyncService(outline, tourRepo, metaRepo)
}

func provideSyncScheduler(syncService services.SyncServiceInterface) *services.SyncScheduler {
	return services.NewSyncScheduler(syncService)
}
