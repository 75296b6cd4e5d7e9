package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"toursync/pkg/utils"
)

func newTestArcticClient(server *httptest.Server) *ArcticClient {
	return &ArcticClient{
		HTTP:     server.Client(),
		BaseURL:  server.URL,
		Username: "api-user",
		Password: "api-pass",
		PageSize: 2,
	}
}

func TestArcticClient_GetSchedule(t *testing.T) {
	var queries []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "api-user" || pass != "api-pass" {
			t.Errorf("missing or wrong basic auth: %q/%q", user, pass)
		}
		if r.URL.Path != "/trip" {
			t.Errorf("path = %q, want /trip", r.URL.Path)
		}

		query := r.URL.Query().Get("query")
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		queries = append(queries, query)

		// The future query pages: 2 entries, then 1. The recent-past query
		// returns a single short page.
		var entries []map[string]interface{}
		switch {
		case strings.Contains(query, `"before"`):
			entries = []map[string]interface{}{
				{"id": 9, "start": "2026-05-01", "end": "2026-05-04", "openings": 8, "remainingopenings": 0},
			}
		case start == 0:
			entries = []map[string]interface{}{
				{"id": 2, "start": "2026-09-10", "end": "2026-09-13", "openings": 8, "remainingopenings": 4},
				{"id": 1, "start": "2026-08-30", "end": "2026-09-02", "openings": 8, "remainingopenings": 2, "isprivate": true},
			}
		default:
			entries = []map[string]interface{}{
				{"id": 3, "start": "2026-10-01", "end": "2026-10-04", "openings": 8, "remainingopenings": 8},
			}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"total":   len(entries),
			"start":   start,
			"number":  2,
			"entries": entries,
		})
	}))
	defer server.Close()

	client := newTestArcticClient(server)
	schedule, err := client.GetSchedule(context.Background(), 191)
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}

	wantFuture := `triptypeid = 191 AND canceled = false AND start.daterelative APPLY("operator", "on-or-after")`
	if queries[0] != wantFuture {
		t.Errorf("future query = %q, want %q", queries[0], wantFuture)
	}
	wantRecent := `triptypeid = 191 AND canceled = false AND start.daterelative APPLY("operator", "on-or-after", "days", -90) AND start.daterelative APPLY("operator", "before")`
	if last := queries[len(queries)-1]; last != wantRecent {
		t.Errorf("recent-past query = %q, want %q", last, wantRecent)
	}

	if schedule.TripTypeID != 191 {
		t.Errorf("TripTypeID = %d, want 191", schedule.TripTypeID)
	}
	if len(schedule.Future) != 3 {
		t.Fatalf("got %d future departures, want 3 across two pages", len(schedule.Future))
	}
	for i := 1; i < len(schedule.Future); i++ {
		if schedule.Future[i-1].StartDate > schedule.Future[i].StartDate {
			t.Errorf("future departures not sorted ascending: %v", schedule.Future)
			break
		}
	}
	if !schedule.Future[0].IsPrivate {
		t.Errorf("earliest departure should carry the private flag, got %+v", schedule.Future[0])
	}
	if len(schedule.RecentPast) != 1 || schedule.RecentPast[0].TripID != 9 {
		t.Errorf("RecentPast = %+v, want the single past departure", schedule.RecentPast)
	}
	if got := schedule.RecentPast[0].SpotsAvailable; got != 0 {
		t.Errorf("SpotsAvailable = %d, want 0", got)
	}
}

func TestArcticClient_GetPricingSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/triptype/191" {
			t.Errorf("path = %q, want /triptype/191", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":        191,
			"name":      "White Rim 4-Day",
			"shortname": "WR4",
			"pricinglevels": []map[string]interface{}{
				{"name": "", "amount": 1275, "default": true},
				{"name": "Youth", "amount": "$1,075.50", "showonline": false},
				{"name": "Booking Deposit", "amount": "300.00"},
				{"name": "Legacy", "amount": "n/a"},
			},
		})
	}))
	defer server.Close()

	client := newTestArcticClient(server)
	summary, err := client.GetPricingSummary(context.Background(), 191)
	if err != nil {
		t.Fatalf("GetPricingSummary() error = %v", err)
	}

	if len(summary.Pricing) != 2 {
		t.Fatalf("got %d pricing levels, want 2 (deposit split out, unparseable dropped): %+v", len(summary.Pricing), summary.Pricing)
	}

	standard := summary.Pricing[0]
	if standard.Name != "Standard" {
		t.Errorf("unnamed level Name = %q, want Standard", standard.Name)
	}
	if standard.Amount != 1275 || !standard.IsDefault || !standard.ShowOnline {
		t.Errorf("standard level = %+v", standard)
	}

	youth := summary.Pricing[1]
	if youth.Amount != 1075.50 {
		t.Errorf("youth Amount = %v, want 1075.50 from %q", youth.Amount, "$1,075.50")
	}
	if youth.ShowOnline {
		t.Error("youth level should respect showonline=false")
	}

	if summary.Deposit == nil {
		t.Fatal("deposit level missing")
	}
	if summary.Deposit.Name != "Booking Deposit" || summary.Deposit.Amount != 300 {
		t.Errorf("Deposit = %+v", summary.Deposit)
	}
}

func TestArcticClient_UpstreamErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestArcticClient(server)
	if _, err := client.GetSchedule(context.Background(), 191); !errors.Is(err, utils.ErrUpstreamError) {
		t.Errorf("GetSchedule err = %v, want ErrUpstreamError", err)
	}
	if _, err := client.GetPricingSummary(context.Background(), 191); !errors.Is(err, utils.ErrUpstreamError) {
		t.Errorf("GetPricingSummary err = %v, want ErrUpstreamError", err)
	}
}

func TestParseDollarAmount(t *testing.T) {
	tests := []struct {
		in     interface{}
		want   float64
		wantOK bool
	}{
		{float64(1275), 1275, true},
		{"1275.00", 1275, true},
		{"$1,275.00", 1275, true},
		{" $300 ", 300, true},
		{"call for pricing", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.in), func(t *testing.T) {
			got, ok := parseDollarAmount(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("parseDollarAmount(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
