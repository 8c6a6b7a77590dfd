package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shop-api/internal/domain"
)

// WishlistRepository define el contrato de persistencia para listas de deseos.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}

// PgWishlistRepository implementa WishlistRepository usando pgxpool.
type PgWishlistRepository struct {
	pool *pgxpool.Pool
}

func NewPgWishlistRepository(pool *pgxpool.Pool) *PgWishlistRepository {
	return &PgWishlistRepository{pool: pool}
}

func (r *PgWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	const query = `
		INSERT INTO wishlist_items (user_id, product_id, added_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, userID, productID)
	return err
}

func (r *PgWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	const query = `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgWishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	const query = `
		SELECT user_id, product_id, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
