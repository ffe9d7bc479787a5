package food

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles food category persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new food repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByType retrieves a food category by its type name
func (r *Repository) GetByType(ctx context.Context, foodType string) (*Food, error) {
	query := `SELECT id, type FROM foods WHERE type = $1`

	food := &Food{}
	err := r.db.QueryRowContext(ctx, query, foodType).Scan(&food.ID, &food.Type)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return food, nil
}

// List retrieves all food categories
func (r *Repository) List(ctx context.Context) ([]*Food, error) {
	query := `SELECT id, type FROM foods ORDER BY type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []*Food
	for rows.Next() {
		food := &Food{}
		if err := rows.Scan(&food.ID, &food.Type); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, food)
	}

	return foods, nil
}
