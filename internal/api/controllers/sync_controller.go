package controllers

import (
	"github.com/gin-gonic/gin"

	"toursync/internal/models/response_models"
	"toursync/internal/services"
	"toursync/pkg/utils"
)

type SyncController struct {
	syncService services.SyncServiceInterface
}

func NewSyncController(syncService services.SyncServiceInterface) *SyncController {
	return &SyncController{
		syncService: syncService,
	}
}

// SyncNow triggers a sync pass on demand. Credential check happens in
// middleware before this handler runs.
func (s *SyncController) SyncNow(c *gin.Context) {
	stats, err := s.syncService.RunSync(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SyncStatsResponse{
		TotalProcessed: stats.TotalProcessed,
		Inserted:       stats.Inserted,
		Updated:        stats.Updated,
		Errors:         stats.Errors,
		LastSync:       stats.LastSync,
	}, "Sync pass completed")
}

func (s *SyncController) SyncStatus(c *gin.Context) {
	status, err := s.syncService.GetStatus(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Sync status fetched successfully")
}
