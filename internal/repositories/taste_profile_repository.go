package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roamio/internal/models/db_models"
	"roamio/internal/models/domain_models"
	"roamio/pkg/utils"
)

type TasteProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain_models.TasteProfile, error)
	Upsert(ctx context.Context, profile *db_models.TasteProfile) error
}

type tasteProfileRepository struct {
	db *gorm.DB
}

func NewTasteProfileRepository(db *gorm.DB) TasteProfileRepository {
	return &tasteProfileRepository{db: db}
}

func (r *tasteProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain_models.TasteProfile, error) {
	var row db_models.TasteProfile
	err := r.db.WithContext(ctx).
		Preload("Interests").
		Where("user_id = ?", userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	profile := &domain_models.TasteProfile{
		UserID:             row.UserID,
		Interests:          make(map[string]float64, len(row.Interests)),
		QualityPreference:  row.QualityPreference,
		CalmnessPreference: row.CalmnessPreference,
		FavoriteCuisines:   row.FavoriteCuisines,
		FavoriteActivities: row.FavoriteActivities,
	}
	for _, interest := range row.Interests {
		profile.Interests[interest.Interest] = interest.Weight
	}
	return profile, nil
}

func (r *tasteProfileRepository) Upsert(ctx context.Context, profile *db_models.TasteProfile) error {
	var existing db_models.TasteProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(profile).Error
	}
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	profile.ID = existing.ID
	return r.db.WithContext(ctx).Save(profile).Error
}
