package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

// RecommendService resuelve recomendaciones para un usuario: carga su perfil
// y el catálogo completo y delega el puntaje en Recommend.
type RecommendService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	prefs    repository.PreferenceRepository
	products repository.ProductRepository
	cfg      ScoringConfig
}

func NewRecommendService(
	logger *zap.Logger,
	users repository.UserRepository,
	prefs repository.PreferenceRepository,
	products repository.ProductRepository,
	cfg ScoringConfig,
) *RecommendService {
	return &RecommendService{
		logger:   logger,
		users:    users,
		prefs:    prefs,
		products: products,
		cfg:      cfg,
	}
}

// Recommend devuelve el subconjunto del catálogo que supera el umbral de
// afinidad para el usuario, ordenado por puntaje descendente.
func (s *RecommendService) Recommend(ctx context.Context, emailAddr string) ([]domain.ScoredProduct, RecommendationMeta, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, RecommendationMeta{}, ErrUserNotFound
		}
		return nil, RecommendationMeta{}, err
	}

	profile, err := s.prefs.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, RecommendationMeta{}, err
	}

	catalog, err := s.products.List(ctx)
	if err != nil {
		return nil, RecommendationMeta{}, err
	}

	scored, meta := Recommend(profile, catalog, s.cfg)
	s.logger.Debug("recommendations computed",
		zap.String("email", user.Email),
		zap.Int("catalog_size", len(catalog)),
		zap.Int("recommended", len(scored)),
	)
	return scored, meta, nil
}
