package domain

// PriceRange representa el intervalo de precios observado para un producto.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductPreference acumula visitas de un usuario sobre un alt-text concreto.
// Existe a lo sumo un registro por alt-text por usuario.
type ProductPreference struct {
	AltText      string     `json:"altText"`
	VisitCount   int        `json:"visitCount"`
	PriceRange   PriceRange `json:"priceRange"`
	InterestType string     `json:"interestType"`
}

// PreferenceProfile es el estado de señales acumuladas por usuario.
// Se crea vacío junto al usuario y solo lo muta el acumulador de preferencias.
type PreferenceProfile struct {
	CategoryPreference map[string]int      `json:"categoryPreference"`
	ProductPreference  []ProductPreference `json:"productPreference"`
}

// NewPreferenceProfile devuelve un perfil vacío listo para acumular señales.
func NewPreferenceProfile() PreferenceProfile {
	return PreferenceProfile{
		CategoryPreference: make(map[string]int),
		ProductPreference:  nil,
	}
}
