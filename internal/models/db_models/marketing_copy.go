package db_models

// MarketingCopy is one row of a tour's "Marketing Copy Variations" table.
// The full set is deleted and reinserted whenever the parent re-syncs.
type MarketingCopy struct {
	BaseModel
	TourCode    string `gorm:"index"`
	Style       string
	Description string
	Position    int
}
