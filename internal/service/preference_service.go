package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

// PreferenceService acumula señales de navegación en el perfil del usuario.
type PreferenceService struct {
	logger *zap.Logger
	users  repository.UserRepository
	prefs  repository.PreferenceRepository
}

func NewPreferenceService(logger *zap.Logger, users repository.UserRepository, prefs repository.PreferenceRepository) *PreferenceService {
	return &PreferenceService{
		logger: logger,
		users:  users,
		prefs:  prefs,
	}
}

// RecordCategoryView incrementa en uno el contador de la categoría vista.
// Una categoría nueva entra con contador 1.
func (s *PreferenceService) RecordCategoryView(ctx context.Context, emailAddr, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrInvalidInput
	}
	user, err := s.findUser(ctx, emailAddr)
	if err != nil {
		return err
	}
	return s.prefs.IncrementCategoryView(ctx, user.ID, category)
}

// RecordProductView registra una vista de producto identificada por alt-text.
// Precio y heading ilegibles se recuperan localmente: la señal derivada queda
// nula y no pisa el valor almacenado.
func (s *PreferenceService) RecordProductView(ctx context.Context, emailAddr, altText, price, heading string) error {
	altText = strings.TrimSpace(altText)
	if altText == "" {
		return ErrInvalidInput
	}
	user, err := s.findUser(ctx, emailAddr)
	if err != nil {
		return err
	}

	priceRange := derivePriceRange(price)
	interestType := deriveInterestType(heading)
	return s.prefs.UpsertProductView(ctx, user.ID, altText, priceRange, interestType)
}

func (s *PreferenceService) findUser(ctx context.Context, emailAddr string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// derivePriceRange colapsa el último precio observado a un intervalo
// degenerado {p, p}. Un precio ausente o no numérico devuelve nil.
func derivePriceRange(price string) *domain.PriceRange {
	price = strings.TrimSpace(price)
	if price == "" {
		return nil
	}
	value, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &domain.PriceRange{Min: value, Max: value}
}

// deriveInterestType toma la primera palabra del nombre del producto como
// token grueso de interés. Un heading vacío devuelve nil.
func deriveInterestType(heading string) *string {
	word := firstWord(heading)
	if word == "" {
		return nil
	}
	return &word
}
