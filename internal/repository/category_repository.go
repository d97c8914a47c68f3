package repository

import (
	"context"
	"fmt"

	"github.com/nhalm/pgxkit"
	"github.com/yourorg/catalogadmin/internal/models"
)

type CategoryRepository struct {
	db *pgxkit.DB
}

func NewCategoryRepository(db *pgxkit.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) GetByID(ctx context.Context, categoryID int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, categoryID).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, mapError("get category", err)
	}
	return &c, nil
}
