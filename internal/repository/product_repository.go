package repository

import (
	"context"
	"errors"

	"github.com/leanlee/shopchat/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var productColumns = []string{
	"id", "sku", "name", "category", "price", "sale_price",
	"is_trending", "is_on_sale",
	"COALESCE(sizes, '')", "COALESCE(colors, '')", "COALESCE(material, '')",
	"COALESCE(description, '')", "stock_qty",
	"COALESCE(shipping_note, '')", "COALESCE(return_note, '')",
}

type ProductRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProductRepository(db *pgxpool.Pool, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListSection returns one page of a browsing section, ordered by name.
func (r *ProductRepository) ListSection(ctx context.Context, section models.ProductSection, page, pageSize int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := squirrel.Select(productColumns...).
		From("products").
		OrderBy("name").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	switch section {
	case models.SectionTrending:
		query = query.Where(squirrel.Eq{"is_trending": true})
	case models.SectionOnSale:
		query = query.Where(squirrel.Eq{"is_on_sale": true})
	case models.SectionMen:
		query = query.Where(squirrel.Eq{"LOWER(category)": "men"})
	case models.SectionWomen:
		query = query.Where(squirrel.Eq{"LOWER(category)": "women"})
	case models.SectionAccessories:
		query = query.Where(squirrel.Eq{"LOWER(category)": "accessories"})
	default:
		return nil, nil
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.SalePrice,
		&p.IsTrending, &p.IsOnSale,
		&p.Sizes, &p.Colors, &p.Material, &p.Description, &p.StockQty,
		&p.ShippingNote, &p.ReturnNote,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
