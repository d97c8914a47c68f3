package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/nhalm/pgxkit"
	"github.com/yourorg/catalogadmin/internal/id"
	"github.com/yourorg/catalogadmin/internal/models"
)

type ProductRepository struct {
	db    *pgxkit.DB
	idGen func() string
}

func NewProductRepository(db *pgxkit.DB) *ProductRepository {
	return &ProductRepository{
		db: db,
		idGen: func() string {
			return id.GenerateIDWithPrefix(id.ProductPrefix)
		},
	}
}

func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id, currency, featured)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		RETURNING `+productColumns,
		r.idGen(), req.Name, req.Description, req.Price.String(), req.Stock,
		req.CategoryID, req.Currency, req.Featured,
	)

	product, err := scanProduct(row)
	if err != nil {
		return nil, mapError("insert product", err)
	}
	return product, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, params models.GetProductParams) (*models.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, params.ProductID)

	product, err := scanProduct(row)
	if err != nil {
		return nil, mapError("get product", err)
	}
	return product, nil
}

// Update applies the non-nil fields of req. imageKeys replaces the stored
// image set when non-nil.
func (r *ProductRepository) Update(ctx context.Context, req *models.UpdateProductRequest, imageKeys []string) (*models.Product, error) {
	var images any
	if imageKeys != nil {
		images = imageKeys
	}

	row := r.db.QueryRow(ctx, `
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			price       = COALESCE($4::numeric, price),
			stock       = COALESCE($5, stock),
			category_id = COALESCE($6, category_id),
			currency    = COALESCE($7, currency),
			featured    = COALESCE($8, featured),
			images      = COALESCE($9::text[], images),
			updated_at  = now()
		WHERE id = $1
		RETURNING `+productColumns,
		req.ID, req.Name, req.Description, decimalParam(req.Price), req.Stock,
		req.CategoryID, req.Currency, req.Featured, images,
	)

	product, err := scanProduct(row)
	if err != nil {
		return nil, mapError("update product", err)
	}
	return product, nil
}

func (r *ProductRepository) ListWithFilters(ctx context.Context, filter models.ListProductsFilter) (*models.ListProductsResult, error) {
	order := "ASC"
	if filter.EndingBefore != nil {
		order = "DESC"
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE ($1::boolean IS NULL OR featured = $1)
		  AND ($2::text IS NULL OR id > $2)
		  AND ($3::text IS NULL OR id < $3)
		ORDER BY id `+order+`
		LIMIT $4`,
		filter.Featured, filter.StartingAfter, filter.EndingBefore, filter.Limit+1,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return paginate(products, filter), nil
}

// paginate trims the limit+1 probe row and derives cursors. Rows arrive in
// descending id order when paging backwards.
func paginate(products []*models.Product, filter models.ListProductsFilter) *models.ListProductsResult {
	hasMore := len(products) > filter.Limit
	if hasMore {
		products = products[:filter.Limit]
	}
	if filter.EndingBefore != nil {
		slices.Reverse(products)
	}

	var nextCursor, prevCursor *string
	if len(products) > 0 {
		last := products[len(products)-1].ID
		first := products[0].ID
		if hasMore || filter.EndingBefore != nil {
			nextCursor = &last
		}
		if filter.StartingAfter != nil || filter.EndingBefore != nil {
			prevCursor = &first
		}
	}

	return &models.ListProductsResult{
		Products:   products,
		HasMore:    hasMore,
		NextCursor: nextCursor,
		PrevCursor: prevCursor,
	}
}
