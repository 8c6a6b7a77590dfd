package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-api/internal/domain"
)

// CartRepository define el contrato de persistencia para carritos.
type CartRepository interface {
	GetOrCreate(ctx context.Context, email string) (domain.Cart, error)
	AddItem(ctx context.Context, email string, item domain.CartItem) error
	ChangeQuantity(ctx context.Context, email, productID string, delta int) error
	RemoveItem(ctx context.Context, email, productID string) error
}

// PgCartRepository implementa CartRepository usando pgxpool.
type PgCartRepository struct {
	pool *pgxpool.Pool
}

func NewPgCartRepository(pool *pgxpool.Pool) *PgCartRepository {
	return &PgCartRepository{pool: pool}
}

func (r *PgCartRepository) GetOrCreate(ctx context.Context, email string) (domain.Cart, error) {
	const upsert = `
		INSERT INTO carts (email, created_at)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, upsert, email, time.Now().UTC()); err != nil {
		return domain.Cart{}, err
	}

	cart := domain.Cart{Email: email}
	const query = `
		SELECT c.created_at, i.product_id, i.heading, i.quantity, i.image_path, i.price, i.in_stock
		FROM carts c
		LEFT JOIN cart_items i ON i.cart_email = c.email
		WHERE c.email = $1
		ORDER BY i.added_at
	`
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return domain.Cart{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			productID *string
			heading   *string
			quantity  *int
			imagePath *string
			price     *float64
			inStock   *bool
		)
		if err := rows.Scan(&cart.CreatedAt, &productID, &heading, &quantity, &imagePath, &price, &inStock); err != nil {
			return domain.Cart{}, err
		}
		if productID == nil {
			continue
		}
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: *productID,
			Heading:   *heading,
			Quantity:  *quantity,
			ImagePath: *imagePath,
			Price:     *price,
			InStock:   *inStock,
		})
	}
	return cart, rows.Err()
}

func (r *PgCartRepository) AddItem(ctx context.Context, email string, item domain.CartItem) error {
	const query = `
		INSERT INTO cart_items (cart_email, product_id, heading, quantity, image_path, price, in_stock, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (cart_email, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	_, err := r.pool.Exec(ctx, query, email, item.ProductID, item.Heading, quantity, item.ImagePath, item.Price, item.InStock)
	return err
}

func (r *PgCartRepository) ChangeQuantity(ctx context.Context, email, productID string, delta int) error {
	const query = `
		UPDATE cart_items SET quantity = quantity + $3
		WHERE cart_email = $1 AND product_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, email, productID, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	// Un decremento que llega a cero elimina la línea del carrito.
	const cleanup = `
		DELETE FROM cart_items
		WHERE cart_email = $1 AND product_id = $2 AND quantity <= 0
	`
	_, err = r.pool.Exec(ctx, cleanup, email, productID)
	return err
}

func (r *PgCartRepository) RemoveItem(ctx context.Context, email, productID string) error {
	const query = `
		DELETE FROM cart_items WHERE cart_email = $1 AND product_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, email, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
