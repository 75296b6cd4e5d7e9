package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"toursync/pkg/utils"
)

// TripDate is one scheduled departure of a trip type.
type TripDate struct {
	TripID         int    `json:"tripId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	SpotsAvailable int    `json:"spotsAvailable"`
	SpotsTotal     int    `json:"spotsTotal"`
	IsPrivate      bool   `json:"isPrivate"`
}

// Schedule is live availability for one trip type: upcoming departures plus
// the trailing 90 days for context.
type Schedule struct {
	TripTypeID int        `json:"tripTypeId"`
	Future     []TripDate `json:"future"`
	RecentPast []TripDate `json:"recentPast"`
}

type PricingLevel struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	ShowOnline  bool    `json:"showOnline"`
	IsDefault   bool    `json:"isDefault"`
}

type PricingSummary struct {
	TripTypeID int            `json:"tripTypeId"`
	Pricing    []PricingLevel `json:"pricing"`
	Deposit    *PricingLevel  `json:"deposit,omitempty"`
}

type ArcticClientInterface interface {
	GetSchedule(ctx context.Context, tripTypeID int) (*Schedule, error)
	GetPricingSummary(ctx context.Context, tripTypeID int) (*PricingSummary, error)
}

type ArcticClient struct {
	HTTP     *http.Client
	BaseURL  string
	Username string
	Password string
	PageSize int
}

func NewArcticClient() *ArcticClient {
	base := os.Getenv("ARCTIC_BASE_URL")
	if base == "" {
		panic("ARCTIC_BASE_URL is empty")
	}

	return &ArcticClient{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:  base,
		Username: os.Getenv("ARCTIC_USERNAME"),
		Password: os.Getenv("ARCTIC_PASSWORD"),
		PageSize: 100,
	}
}

func (c *ArcticClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := c.BaseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: arctic %s: %v", utils.ErrUpstreamError, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: arctic %s: status %s", utils.ErrUpstreamError, endpoint, resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// Trip wire format. Amounts elsewhere come back as either numbers or
// display strings, so pricing uses interface{} and normalizes.
type arcticTrip struct {
	ID                int    `json:"id"`
	Start             string `json:"start"`
	End               string `json:"end"`
	Openings          int    `json:"openings"`
	RemainingOpenings int    `json:"remainingopenings"`
	IsPrivate         bool   `json:"isprivate"`
}

type arcticTripType struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"shortname"`
	PricingLevels []struct {
		Name        string      `json:"name"`
		Amount      interface{} `json:"amount"`
		Description string      `json:"description"`
		ShowOnline  *bool       `json:"showonline"`
		Default     bool        `json:"default"`
	} `json:"pricinglevels"`
}

// listTrips pages through /trip with an Arctic query expression using the
// platform's start/number offset pagination.
func (c *ArcticClient) listTrips(ctx context.Context, query string) ([]arcticTrip, error) {
	var all []arcticTrip
	start := 0

	for {
		params := url.Values{}
		params.Set("query", query)
		params.Set("start", strconv.Itoa(start))
		params.Set("number", strconv.Itoa(c.PageSize))

		var page struct {
			Total   int          `json:"total"`
			Start   int          `json:"start"`
			Number  int          `json:"number"`
			Entries []arcticTrip `json:"entries"`
		}
		if err := c.get(ctx, "trip", params, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Entries...)
		if len(page.Entries) < c.PageSize {
			return all, nil
		}
		start += c.PageSize
	}
}

func (c *ArcticClient) GetSchedule(ctx context.Context, tripTypeID int) (*Schedule, error) {
	futureQuery := NewArcticQuery().
		Eq("triptypeid", tripTypeID).
		Eq("canceled", false).
		RelativeDate("start", ArcticOnOrAfter).
		String()

	recentQuery := NewArcticQuery().
		Eq("triptypeid", tripTypeID).
		Eq("canceled", false).
		RelativeDate("start", ArcticOnOrAfter, -90).
		RelativeDate("start", ArcticBefore).
		String()

	futureTrips, err := c.listTrips(ctx, futureQuery)
	if err != nil {
		return nil, err
	}
	recentTrips, err := c.listTrips(ctx, recentQuery)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		TripTypeID: tripTypeID,
		Future:     toTripDates(futureTrips),
		RecentPast: toTripDates(recentTrips),
	}

	sort.Slice(schedule.Future, func(i, j int) bool {
		return schedule.Future[i].StartDate < schedule.Future[j].StartDate
	})
	sort.Slice(schedule.RecentPast, func(i, j int) bool {
		return schedule.RecentPast[i].StartDate > schedule.RecentPast[j].StartDate
	})

	return schedule, nil
}

func toTripDates(trips []arcticTrip) []TripDate {
	dates := make([]TripDate, 0, len(trips))
	for _, t := range trips {
		if t.Start == "" {
			continue
		}
		dates = append(dates, TripDate{
			TripID:         t.ID,
			StartDate:      t.Start,
			EndDate:        t.End,
			SpotsAvailable: t.RemainingOpenings,
			SpotsTotal:     t.Openings,
			IsPrivate:      t.IsPrivate,
		})
	}
	return dates
}

func (c *ArcticClient) GetPricingSummary(ctx context.Context, tripTypeID int) (*PricingSummary, error) {
	var tripType arcticTripType
	if err := c.get(ctx, "triptype/"+strconv.Itoa(tripTypeID), nil, &tripType); err != nil {
		return nil, err
	}

	summary := &PricingSummary{TripTypeID: tripTypeID, Pricing: []PricingLevel{}}

	for _, raw := range tripType.PricingLevels {
		amount, ok := parseDollarAmount(raw.Amount)
		if !ok {
			continue
		}

		level := PricingLevel{
			Name:        raw.Name,
			Amount:      amount,
			Description: raw.Description,
			ShowOnline:  raw.ShowOnline == nil || *raw.ShowOnline,
			IsDefault:   raw.Default,
		}
		if level.Name == "" {
			level.Name = "Standard"
		}

		if strings.Contains(strings.ToLower(raw.Name), "deposit") {
			deposit := level
			summary.Deposit = &deposit
		} else {
			summary.Pricing = append(summary.Pricing, level)
		}
	}

	return summary, nil
}

// parseDollarAmount accepts 1275, "1275.00" and "$1,275.00".
func parseDollarAmount(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(v), "$"), ",", "")
		amount, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return amount, true
	default:
		return 0, false
	}
}
