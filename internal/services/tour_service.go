package services

import (
	"context"
	"log"

	"toursync/internal/models/db_models"
	"toursync/internal/models/response_models"
	"toursync/internal/repositories"
	"toursync/pkg/utils"
)

type TourServiceInterface interface {
	ListTours(ctx context.Context, filters map[string]string) ([]response_models.TourResponse, error)
	GetTour(ctx context.Context, code string) (response_models.TourResponse, error)

	// Live data, proxied straight from the reservation platform via the
	// tour's arcticId. Never persisted.
	GetAvailability(ctx context.Context, code string) (*Schedule, error)
	GetPricing(ctx context.Context, code string) (*PricingSummary, error)
}

type TourService struct {
	tourRepo repositories.TourRepository
	arctic   ArcticClientInterface
}

func NewTourService(tourRepo repositories.TourRepository, arctic ArcticClientInterface) TourServiceInterface {
	return &TourService{
		tourRepo: tourRepo,
		arctic:   arctic,
	}
}

func (t *TourService) ListTours(ctx context.Context, filters map[string]string) ([]response_models.TourResponse, error) {
	tours, err := t.tourRepo.List(ctx, filters)
	if err != nil {
		log.Printf("Error listing tours: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.TourResponse, 0, len(tours))
	for _, tour := range tours {
		responses = append(responses, toTourResponse(tour, false))
	}
	return responses, nil
}

func (t *TourService) GetTour(ctx context.Context, code string) (response_models.TourResponse, error) {
	tour, err := t.tourRepo.GetByCode(ctx, code)
	if err != nil {
		log.Printf("Error fetching tour %s: %v", code, err)
		return response_models.TourResponse{}, utils.ErrDatabaseError
	}
	if tour == nil {
		return response_models.TourResponse{}, utils.ErrTourNotFound
	}

	return toTourResponse(*tour, true), nil
}

func (t *TourService) GetAvailability(ctx context.Context, code string) (*Schedule, error) {
	tour, err := t.lookupLinkedTour(ctx, code)
	if err != nil {
		return nil, err
	}
	return t.arctic.GetSchedule(ctx, *tour.ArcticID)
}

func (t *TourService) GetPricing(ctx context.Context, code string) (*PricingSummary, error) {
	tour, err := t.lookupLinkedTour(ctx, code)
	if err != nil {
		return nil, err
	}
	return t.arctic.GetPricingSummary(ctx, *tour.ArcticID)
}

func (t *TourService) lookupLinkedTour(ctx context.Context, code string) (*db_models.Tour, error) {
	tour, err := t.tourRepo.GetByCode(ctx, code)
	if err != nil {
		log.Printf("Error fetching tour %s: %v", code, err)
		return nil, utils.ErrDatabaseError
	}
	if tour == nil {
		return nil, utils.ErrTourNotFound
	}
	if tour.ArcticID == nil {
		return nil, utils.ErrNoArcticID
	}
	return tour, nil
}

func toTourResponse(tour db_models.Tour, withCopies bool) response_models.TourResponse {
	resp := response_models.TourResponse{
		TourCode:       tour.TourCode,
		OutlineID:      tour.OutlineID,
		Name:           tour.Name,
		TourType:       tour.TourType,
		Difficulty:     tour.Difficulty,
		Region:         tour.Region,
		Duration:       tour.Duration,
		DurationDays:   tour.DurationDays,
		DurationNights: tour.DurationNights,
		SeasonStart:    tour.SeasonStart,
		SeasonEnd:      tour.SeasonEnd,
		ArcticID:       tour.ArcticID,
		WordpressURL:   tour.WordpressURL,
		Description:    tour.Description,
		MeetingInfo:    tour.MeetingInfo,
		PackingList:    tour.PackingList,
		Itinerary:      tour.Itinerary,
		BookingNotes:   tour.BookingNotes,
		PriceRange:     tour.PriceRange,
		HasEbike:       tour.HasEbike,
		IsPrivate:      tour.IsPrivate,
	}

	if withCopies {
		copies := make([]response_models.MarketingCopyResponse, 0, len(tour.MarketingCopies))
		for _, c := range tour.MarketingCopies {
			copies = append(copies, response_models.MarketingCopyResponse{
				Style:       c.Style,
				Description: c.Description,
			})
		}
		resp.MarketingCopies = copies
	}
	return resp
}
