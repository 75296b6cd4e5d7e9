package response_models

// TourResponse is the website-facing shape of a tour row. Optional source
// fields stay pointers so absent sections serialize as null rather than "".
type TourResponse struct {
	TourCode  string `json:"tourCode"`
	OutlineID string `json:"outlineId"`
	Name      string `json:"name"`

	TourType       *string `json:"tourType"`
	Difficulty     *string `json:"difficulty"`
	Region         *string `json:"region"`
	Duration       *string `json:"duration"`
	DurationDays   *int    `json:"durationDays"`
	DurationNights *int    `json:"durationNights"`
	SeasonStart    *string `json:"seasonStart"`
	SeasonEnd      *string `json:"seasonEnd"`

	ArcticID     *int    `json:"arcticId"`
	WordpressURL *string `json:"wordpressUrl"`

	Description  *string `json:"description"`
	MeetingInfo  *string `json:"meetingInfo"`
	PackingList  *string `json:"packingList"`
	Itinerary    *string `json:"itinerary"`
	BookingNotes *string `json:"bookingNotes"`

	PriceRange *string `json:"priceRange"`
	HasEbike   bool    `json:"hasEbike"`
	IsPrivate  bool    `json:"isPrivate"`

	MarketingCopies []MarketingCopyResponse `json:"marketingCopies,omitempty"`
}

type MarketingCopyResponse struct {
	Style       string `json:"style"`
	Description string `json:"description"`
}
