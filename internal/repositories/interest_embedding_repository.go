package repositories

import (
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"roamio/internal/models/db_models"
	"roamio/pkg/utils"
)

type InterestEmbeddingRepository interface {
	GetNearestByVector(userID string, vector pgvector.Vector, limit int) ([]db_models.InterestEmbedding, error)
	Create(embedding db_models.InterestEmbedding) error
}

type interestEmbeddingRepository struct {
	db *gorm.DB
}

func NewInterestEmbeddingRepository(db *gorm.DB) InterestEmbeddingRepository {
	return &interestEmbeddingRepository{db: db}
}

func (r *interestEmbeddingRepository) GetNearestByVector(userID string, vector pgvector.Vector, limit int) ([]db_models.InterestEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}
	var results []db_models.InterestEmbedding

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM interest_embeddings
        WHERE user_id = $2
          AND (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.Raw(query, vecStr, userID, limit).Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return results, nil
}

func (r *interestEmbeddingRepository) Create(embedding db_models.InterestEmbedding) error {
	if err := r.db.Create(&embedding).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}
