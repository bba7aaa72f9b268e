package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

const queryTimeout = 3 * time.Second

const productColumns = `id, name, slug, sku, description, short_description, price, sale_price,
	stock_quantity, manage_stock, status, featured, category_id, subcategory_id, images, gallery,
	meta_title, meta_description, weight, length, width, height, created_at, updated_at`

// effectivePriceExpr mirrors models.Product.EffectivePrice.
const effectivePriceExpr = `(CASE WHEN sale_price IS NOT NULL AND sale_price < price THEN sale_price ELSE price END)`

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, productArgs(p)...)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("inserting product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *PostgresProductRepository) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *PostgresProductRepository) getOne(ctx context.Context, query string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("fetching product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $2, slug = $3, sku = $4, description = $5, short_description = $6,
		price = $7, sale_price = $8, stock_quantity = $9, manage_stock = $10, status = $11, featured = $12,
		category_id = $13, subcategory_id = $14, images = $15, gallery = $16, meta_title = $17,
		meta_description = $18, weight = $19, length = $20, width = $21, height = $22, updated_at = $23
		WHERE id = $1
		RETURNING created_at`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p.UpdatedAt = time.Now().UTC()
	// productArgs minus created_at, which an update never touches.
	args := append(productArgs(p)[:22:22], p.UpdatedAt)

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("updating product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Filter returns one page of matching products and the total number of matches.
func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	products := []models.Product{}
	if totalCount == 0 || pf.Offset() >= totalCount {
		return products, totalCount, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY " + orderClause(pf.Sort)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pf.Limit, pf.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, totalCount, nil
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Search != "" {
		query += fmt.Sprintf(` AND (name ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, argIdx, argIdx)
		args = append(args, "%"+escapeLike(pf.Search)+"%")
		argIdx++
	}
	if len(pf.CategorySlugs) > 0 {
		query += fmt.Sprintf(" AND category_id IN (SELECT id FROM categories WHERE slug = ANY($%d))", argIdx)
		args = append(args, pf.CategorySlugs)
		argIdx++
	}
	if pf.SubcategoryID != "" {
		query += fmt.Sprintf(" AND subcategory_id::text = $%d", argIdx)
		args = append(args, pf.SubcategoryID)
		argIdx++
	}
	if pf.GroupID != "" {
		query += fmt.Sprintf(" AND category_id IN (SELECT id FROM categories WHERE group_id::text = $%d)", argIdx)
		args = append(args, pf.GroupID)
		argIdx++
	}
	if pf.Price != nil {
		query += fmt.Sprintf(" AND %s >= $%d AND %s <= $%d", effectivePriceExpr, argIdx, effectivePriceExpr, argIdx+1)
		args = append(args, pf.Price.Min, pf.Price.Max)
		argIdx += 2
	}
	if pf.InStock {
		query += " AND stock_quantity > 0"
	}
	if pf.Featured {
		query += " AND featured = TRUE"
	}
	if len(pf.Statuses) > 0 {
		statuses := make([]string, len(pf.Statuses))
		for i, s := range pf.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND status = ANY($%d)", argIdx)
		args = append(args, statuses)
		argIdx++
	}

	return query, args, argIdx
}

func orderClause(sort models.ProductSort) string {
	switch sort {
	case models.SortPriceAsc:
		return effectivePriceExpr + " ASC, id ASC"
	case models.SortPriceDesc:
		return effectivePriceExpr + " DESC, id ASC"
	case models.SortCreatedAt:
		return "created_at DESC, id ASC"
	case models.SortFeatured:
		return "featured DESC, name ASC, id ASC"
	default:
		return "name ASC, id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE metacharacters so user input only ever matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *PostgresProductRepository) PriceRange(ctx context.Context) (models.PriceRange, error) {
	query := fmt.Sprintf(`SELECT MIN(%s), MAX(%s) FROM products WHERE status = $1`, effectivePriceExpr, effectivePriceExpr)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var lowest, highest decimal.NullDecimal
	if err := r.db.QueryRowContext(ctx, query, string(models.StatusActive)).Scan(&lowest, &highest); err != nil {
		return models.PriceRange{}, fmt.Errorf("querying price range: %w", err)
	}
	return priceRangeFrom(lowest, highest), nil
}

func (r *PostgresProductRepository) AdjustStock(ctx context.Context, id string, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $1, updated_at = $2
		WHERE id = $3 AND stock_quantity + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), id))
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("adjusting stock: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                             models.Product
		price                         decimal.Decimal
		status                        string
		categoryID, subcategoryID     sql.NullString
		weight, length, width, height sql.NullFloat64
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.ShortDescription, &price, &p.SalePrice,
		&p.StockQuantity, &p.ManageStock, &status, &p.Featured, &categoryID, &subcategoryID,
		&p.Images, &p.Gallery, &p.MetaTitle, &p.MetaDescription, &weight, &length, &width, &height,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}

	p.Price = price
	p.Status = models.ProductStatus(status)
	if categoryID.Valid {
		p.CategoryID = &categoryID.String
	}
	if subcategoryID.Valid {
		p.SubcategoryID = &subcategoryID.String
	}
	if weight.Valid {
		p.Weight = &weight.Float64
	}
	if length.Valid || width.Valid || height.Valid {
		p.Dimensions = &models.Dimensions{Length: length.Float64, Width: width.Float64, Height: height.Float64}
	}
	return p, nil
}

// productArgs lists values in productColumns order. Decimals and JSON lists travel as text.
func productArgs(p models.Product) []any {
	var length, width, height any
	if p.Dimensions != nil {
		length, width, height = p.Dimensions.Length, p.Dimensions.Width, p.Dimensions.Height
	}
	images, _ := p.Images.Value()
	gallery, _ := p.Gallery.Value()

	return []any{
		p.ID, p.Name, p.Slug, p.SKU, p.Description, p.ShortDescription,
		p.Price.String(), nullDecimalArg(p.SalePrice),
		p.StockQuantity, p.ManageStock, string(p.Status), p.Featured,
		nullStringArg(p.CategoryID), nullStringArg(p.SubcategoryID),
		images, gallery, p.MetaTitle, p.MetaDescription,
		nullFloatArg(p.Weight), length, width, height,
		p.CreatedAt, p.UpdatedAt,
	}
}

func nullDecimalArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func nullStringArg(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullFloatArg(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
