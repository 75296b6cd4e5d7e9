package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toursync/internal/services"
	"toursync/pkg/utils"
)

type ToursController struct {
	tourService services.TourServiceInterface
}

func NewToursController(tourService services.TourServiceInterface) *ToursController {
	return &ToursController{
		tourService: tourService,
	}
}

// Recognized list filters; anything else on the query string is ignored.
var listFilterKeys = []string{"type", "difficulty", "region", "duration"}

func (t *ToursController) ListTours(c *gin.Context) {
	filters := map[string]string{}
	for _, key := range listFilterKeys {
		if value := c.Query(key); value != "" {
			filters[key] = value
		}
	}

	tours, err := t.tourService.ListTours(c.Request.Context(), filters)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tours, "Tours fetched successfully")
}

func (t *ToursController) GetTour(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour code is required")
		return
	}

	tour, err := t.tourService.GetTour(c.Request.Context(), code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tour, "Tour fetched successfully")
}

func (t *ToursController) GetAvailability(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour code is required")
		return
	}

	schedule, err := t.tourService.GetAvailability(c.Request.Context(), code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, schedule, "Availability fetched successfully")
}

func (t *ToursController) GetPricing(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Tour code is required")
		return
	}

	pricing, err := t.tourService.GetPricing(c.Request.Context(), code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pricing, "Pricing fetched successfully")
}
