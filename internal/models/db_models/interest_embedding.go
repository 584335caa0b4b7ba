package db_models

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// InterestEmbedding stores a vector per user interest label so the explicit
// scorer can match place categories by similarity instead of exact strings.
type InterestEmbedding struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Label     string
	Weight    float64
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
