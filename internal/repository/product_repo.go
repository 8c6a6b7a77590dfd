package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-api/internal/domain"
)

// ProductRepository define el contrato de persistencia para el catálogo.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) error
	GetByID(ctx context.Context, id string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	SetLiked(ctx context.Context, id string, liked bool) error
	Delete(ctx context.Context, id string) error
}

// PgProductRepository implementa ProductRepository usando pgxpool.
type PgProductRepository struct {
	pool *pgxpool.Pool
}

func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

func (r *PgProductRepository) Create(ctx context.Context, product domain.Product) error {
	props, err := json.Marshal(product.Properties)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO products
			(id, heading, alt_text, old_price, price, in_stock, category, image_path, properties, is_liked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.pool.Exec(ctx, query,
		product.ID,
		product.Heading,
		product.AltText,
		product.OldPrice,
		product.Price,
		product.InStock,
		product.Category,
		product.ImagePath,
		props,
		product.IsLiked,
		product.CreatedAt,
	)
	return err
}

func (r *PgProductRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const query = `
		SELECT id, heading, alt_text, old_price, price, in_stock, category, image_path, properties, is_liked, created_at
		FROM products
		WHERE id = $1
	`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT id, heading, alt_text, old_price, price, in_stock, category, image_path, properties, is_liked, created_at
		FROM products
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PgProductRepository) Update(ctx context.Context, product domain.Product) error {
	props, err := json.Marshal(product.Properties)
	if err != nil {
		return err
	}
	const query = `
		UPDATE products SET
			heading = $2, alt_text = $3, old_price = $4, price = $5, in_stock = $6,
			category = $7, image_path = $8, properties = $9, is_liked = $10
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Heading,
		product.AltText,
		product.OldPrice,
		product.Price,
		product.InStock,
		product.Category,
		product.ImagePath,
		props,
		product.IsLiked,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgProductRepository) SetLiked(ctx context.Context, id string, liked bool) error {
	const query = `
		UPDATE products SET is_liked = $2 WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, liked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgProductRepository) Delete(ctx context.Context, id string) error {
	const query = `
		DELETE FROM products WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	var props []byte
	err := row.Scan(
		&p.ID,
		&p.Heading,
		&p.AltText,
		&p.OldPrice,
		&p.Price,
		&p.InStock,
		&p.Category,
		&p.ImagePath,
		&props,
		&p.IsLiked,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &p.Properties); err != nil {
			return domain.Product{}, err
		}
	}
	return p, nil
}
