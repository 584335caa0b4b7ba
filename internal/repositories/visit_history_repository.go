package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"roamio/internal/models/db_models"
	"roamio/pkg/utils"
)

type VisitHistoryRepository interface {
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]db_models.Visit, error)
	CountByUserAndPlace(ctx context.Context, userID, placeID string) (int64, error)
}

type visitHistoryRepository struct {
	db *gorm.DB
}

func NewVisitHistoryRepository(db *gorm.DB) VisitHistoryRepository {
	return &visitHistoryRepository{db: db}
}

func (r *visitHistoryRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]db_models.Visit, error) {
	if limit <= 0 {
		limit = 100
	}
	var visits []db_models.Visit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visited_at DESC").
		Limit(limit).
		Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return visits, nil
}

func (r *visitHistoryRepository) CountByUserAndPlace(ctx context.Context, userID, placeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Visit{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return count, nil
}
