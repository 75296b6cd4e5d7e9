package db_models

// Tour is a parsed snapshot of one Outline tour document. TourCode is the
// natural key shared across Outline, Arctic and the website; every sync pass
// fully replaces the row (and its marketing copies) from the source document.
type Tour struct {
	BaseModel
	TourCode string `gorm:"uniqueIndex"`
	// Not unique: renaming a tour's code in the source creates a new row
	// under the new code, and the old row keeps the same outline id until
	// deactivated out-of-band. Duplicate detection is the operator's job.
	OutlineID string `gorm:"index"`
	Name      string

	TourType       *string `gorm:"index"`
	Difficulty     *string `gorm:"index"`
	Region         *string `gorm:"index"`
	Duration       *string `gorm:"index"`
	DurationDays   *int
	DurationNights *int
	SeasonStart    *string
	SeasonEnd      *string

	// Cross-system links. ArcticID points into the reservation platform's
	// trip-type catalog and is only used to fetch live availability/pricing.
	ArcticID     *int
	WordpressURL *string

	Description  *string
	MeetingInfo  *string
	PackingList  *string
	Itinerary    *string
	BookingNotes *string

	// Derived, non-authoritative fields. PriceRange is a coarse bucket
	// computed from duration alone, never real pricing.
	PriceRange *string
	HasEbike   bool
	IsPrivate  bool

	IsActive bool `gorm:"default:true"`

	MarketingCopies []MarketingCopy `gorm:"foreignKey:TourCode;references:TourCode"`
}
