package db_models

import "github.com/lib/pq"

// Visit is one entry of a user's visit history, written by the check-in flow
// outside this service and read here for implicit affinity and novelty.
type Visit struct {
	BaseModel
	UserID     string `gorm:"index"`
	PlaceID    string `gorm:"index"`
	PlaceName  string
	Categories pq.StringArray `gorm:"type:text[]"`
	Latitude   float64
	Longitude  float64
	VisitedAt  int64
}
