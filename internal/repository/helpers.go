package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yourorg/catalogadmin/internal/models"
)

// productColumns is the select list understood by scanProduct. Price is read
// as text so it round-trips through decimal without float loss.
const productColumns = `id, name, description, price::text, stock, category_id,
	currency, featured, images, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		p     models.Product
		price string
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &price, &p.Stock, &p.CategoryID,
		&p.Currency, &p.Featured, &p.Images, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	if p.Images == nil {
		p.Images = []string{}
	}

	return &p, nil
}

func decimalParam(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}
