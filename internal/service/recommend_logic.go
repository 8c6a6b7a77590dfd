package service

import (
	"math"
	"sort"
	"strings"

	"shop-api/internal/domain"
)

// ScoringConfig agrupa pesos y umbrales del cálculo de afinidad.
// Valores expuestos como configuración para poder ajustarlos y testearlos.
type ScoringConfig struct {
	CategoryViewsWeight float64
	ProductViewsWeight  float64
	PriceRangeWeight    float64
	InterestTypeWeight  float64
	// PriceDeviation es la desviación absoluta máxima respecto al precio
	// medio observado para sumar el término de precio.
	PriceDeviation float64
	// Threshold filtra productos con puntaje normalizado menor.
	Threshold float64
	// CapMatches limita cada término a un solo aporte por producto. Apagado
	// reproduce el comportamiento histórico: coincidencias repetidas de
	// interés o alt-text suman el peso completo cada vez, sin tope.
	CapMatches bool
}

// DefaultScoringConfig devuelve los pesos históricos del scorer.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CategoryViewsWeight: 0.4,
		ProductViewsWeight:  0.3,
		PriceRangeWeight:    0.2,
		InterestTypeWeight:  0.3,
		PriceDeviation:      1000,
		Threshold:           0.5,
	}
}

func (c ScoringConfig) totalWeight() float64 {
	return c.CategoryViewsWeight + c.ProductViewsWeight + c.PriceRangeWeight + c.InterestTypeWeight
}

// RecommendationMeta expone las señales agregadas usadas por el scorer.
type RecommendationMeta struct {
	TopCategories     []string `json:"topCategories"`
	TopAltText        string   `json:"topAltText"`
	AveragePriceRange float64  `json:"averagePriceRange"`
}

// Recommend puntúa el catálogo contra el perfil y devuelve los productos
// que superan el umbral, ordenados por puntaje descendente. Es una función
// pura: no muta el perfil ni el catálogo.
func Recommend(profile domain.PreferenceProfile, catalog []domain.Product, cfg ScoringConfig) ([]domain.ScoredProduct, RecommendationMeta) {
	avgPrice, hasPriceSignal := averagePriceMidpoint(profile.ProductPreference)

	meta := RecommendationMeta{
		TopCategories: topTwoCategories(profile.CategoryPreference),
		TopAltText:    topAltText(profile.ProductPreference),
	}
	if hasPriceSignal {
		meta.AveragePriceRange = avgPrice
	}

	total := cfg.totalWeight()
	var scored []domain.ScoredProduct
	for _, p := range catalog {
		score := cfg.CategoryViewsWeight

		if hasPriceSignal && math.Abs(p.Price-avgPrice) <= cfg.PriceDeviation {
			score += cfg.PriceRangeWeight
		}

		interest := firstWord(p.Heading)
		for _, pref := range profile.ProductPreference {
			if pref.InterestType == interest {
				score += cfg.InterestTypeWeight
				if cfg.CapMatches {
					break
				}
			}
		}

		for _, alt := range p.AltText {
			if alt == meta.TopAltText {
				score += cfg.ProductViewsWeight
				if cfg.CapMatches {
					break
				}
			}
		}

		normalized := score / total
		if normalized >= cfg.Threshold {
			scored = append(scored, domain.ScoredProduct{Product: p, MatchScore: normalized})
		}
	}

	// Orden estable: los empates conservan el orden del catálogo.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	return scored, meta
}

// averagePriceMidpoint promedia los puntos medios de los rangos observados.
// Sin registros no hay señal de precio y el término de precio no aporta.
func averagePriceMidpoint(prefs []domain.ProductPreference) (float64, bool) {
	if len(prefs) == 0 {
		return 0, false
	}
	var sum float64
	for _, pref := range prefs {
		sum += (pref.PriceRange.Min + pref.PriceRange.Max) / 2
	}
	return sum / float64(len(prefs)), true
}

// topTwoCategories reproduce la selección de dos cupos sobre el contador de
// categorías: un máximo que desplaza y un segundo cupo que acumula. El
// resultado no filtra el catálogo; se expone solo como metadata.
func topTwoCategories(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for category := range counts {
		keys = append(keys, category)
	}
	// El orden de iteración de un map no es estable; se fija por clave para
	// que el resultado sea determinista.
	sort.Strings(keys)

	var top []string
	maxCounts := [2]int{}
	for _, category := range keys {
		count := counts[category]
		switch {
		case count > maxCounts[0]:
			maxCounts[1] = maxCounts[0]
			maxCounts[0] = count
			top = []string{category}
		case count > maxCounts[1]:
			maxCounts[1] = count
			top = append(top, category)
		}
	}
	return top
}

// topAltText devuelve el alt-text con más visitas; el primero visto gana
// los empates.
func topAltText(prefs []domain.ProductPreference) string {
	maxVisits := 0
	top := ""
	for _, pref := range prefs {
		if pref.VisitCount > maxVisits {
			maxVisits = pref.VisitCount
			top = pref.AltText
		}
	}
	return top
}

// firstWord devuelve el primer token separado por espacios, o cadena vacía.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
