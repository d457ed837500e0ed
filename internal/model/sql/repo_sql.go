package sql

import (
	"math"

	"gorm.io/gorm"
)

// GormRepository implements Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// roundRating shapes an SQL AVG into the wire value: rounded to the
// requested number of decimals, 0 when the store has no reviews yet.
// Rounding happens here rather than in SQL because ROUND/COALESCE
// signatures differ across the supported dialects.
func roundRating(avg *float64, decimals int) float64 {
	if avg == nil {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(*avg*pow) / pow
}
