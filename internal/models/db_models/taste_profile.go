package db_models

import "github.com/lib/pq"

// TasteProfile stores the declared preferences a user picked during the taste
// quiz (the quiz flow itself lives outside this service).
type TasteProfile struct {
	BaseModel
	UserID             string `gorm:"uniqueIndex"`
	QualityPreference  float64
	CalmnessPreference float64
	FavoriteCuisines   pq.StringArray `gorm:"type:text[]"`
	FavoriteActivities pq.StringArray `gorm:"type:text[]"`

	Interests []TasteInterest `gorm:"foreignKey:ProfileID"`
}

// TasteInterest is one weighted interest row of a profile, e.g. ("museum", 0.8).
type TasteInterest struct {
	BaseModel
	ProfileID string `gorm:"index"`
	Interest  string
	Weight    float64
}
