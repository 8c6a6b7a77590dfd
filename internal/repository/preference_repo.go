package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"shop-api/internal/domain"
)

// PreferenceRepository persiste señales de afinidad por usuario.
// Los upserts son atómicos por fila: dos vistas concurrentes del mismo
// usuario nunca pierden incrementos, a diferencia de un read-modify-write
// del perfil completo.
type PreferenceRepository interface {
	IncrementCategoryView(ctx context.Context, userID, category string) error
	UpsertProductView(ctx context.Context, userID, altText string, price *domain.PriceRange, interestType *string) error
	GetProfile(ctx context.Context, userID string) (domain.PreferenceProfile, error)
}

// PgPreferenceRepository implementa PreferenceRepository usando pgxpool.
type PgPreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceRepository(pool *pgxpool.Pool) *PgPreferenceRepository {
	return &PgPreferenceRepository{pool: pool}
}

func (r *PgPreferenceRepository) IncrementCategoryView(ctx context.Context, userID, category string) error {
	const query = `
		INSERT INTO category_preferences (user_id, category, visit_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, category)
		DO UPDATE SET visit_count = category_preferences.visit_count + 1
	`
	_, err := r.pool.Exec(ctx, query, userID, category)
	return err
}

func (r *PgPreferenceRepository) UpsertProductView(ctx context.Context, userID, altText string, price *domain.PriceRange, interestType *string) error {
	// COALESCE conserva el valor previo cuando la señal derivada vino nula.
	const query = `
		INSERT INTO product_preferences
			(user_id, alt_text, visit_count, price_min, price_max, interest_type, created_at)
		VALUES ($1, $2, 1, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, ''), now())
		ON CONFLICT (user_id, alt_text)
		DO UPDATE SET
			visit_count   = product_preferences.visit_count + 1,
			price_min     = COALESCE($3, product_preferences.price_min),
			price_max     = COALESCE($4, product_preferences.price_max),
			interest_type = COALESCE($5, product_preferences.interest_type)
	`
	var priceMin, priceMax *float64
	if price != nil {
		priceMin = &price.Min
		priceMax = &price.Max
	}
	_, err := r.pool.Exec(ctx, query, userID, altText, priceMin, priceMax, interestType)
	return err
}

func (r *PgPreferenceRepository) GetProfile(ctx context.Context, userID string) (domain.PreferenceProfile, error) {
	profile := domain.NewPreferenceProfile()

	const categoryQuery = `
		SELECT category, visit_count
		FROM category_preferences
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, categoryQuery, userID)
	if err != nil {
		return domain.PreferenceProfile{}, err
	}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			rows.Close()
			return domain.PreferenceProfile{}, err
		}
		profile.CategoryPreference[category] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.PreferenceProfile{}, err
	}

	// El orden de inserción decide los desempates del scorer.
	const productQuery = `
		SELECT alt_text, visit_count, price_min, price_max, interest_type
		FROM product_preferences
		WHERE user_id = $1
		ORDER BY created_at, alt_text
	`
	rows, err = r.pool.Query(ctx, productQuery, userID)
	if err != nil {
		return domain.PreferenceProfile{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.ProductPreference
		if err := rows.Scan(&p.AltText, &p.VisitCount, &p.PriceRange.Min, &p.PriceRange.Max, &p.InterestType); err != nil {
			return domain.PreferenceProfile{}, err
		}
		profile.ProductPreference = append(profile.ProductPreference, p)
	}
	if err := rows.Err(); err != nil {
		return domain.PreferenceProfile{}, err
	}
	return profile, nil
}
