package service

import (
	"math/rand"
	"strings"

	"uni-match/internal/domain"
)

// CompatibilityScorer calcula la compatibilidad 0-100 entre dos perfiles.
// La implementacion se elige por configuracion; el generador de matches no
// sabe cual tiene detras.
type CompatibilityScorer interface {
	Score(self, other domain.Profile) int
}

// RandomScorer es el placeholder historico: un entero uniforme en [60, 100]
// por llamada. No es deterministico ni simetrico; el contrato publicado es
// solo el rango. Existe para reproducir el comportamiento observado mientras
// no haya un algoritmo real.
type RandomScorer struct{}

func (RandomScorer) Score(_, _ domain.Profile) int {
	return rand.Intn(41) + 60
}

// TraitScorer es la variante deterministica y simetrica: una similitud
// ponderada sobre Big Five, Dark Triad, letras MBTI y signo zodiacal.
// Cada componente solo pesa si ambos perfiles traen el dato.
type TraitScorer struct{}

func (TraitScorer) Score(self, other domain.Profile) int {
	type part struct {
		score  float64
		weight float64
	}
	var parts []part

	if s, ok := traitSimilarity(self.BigFive, other.BigFive); ok {
		parts = append(parts, part{s, 0.5})
	}
	if s, ok := traitSimilarity(self.DarkTriad, other.DarkTriad); ok {
		parts = append(parts, part{s, 0.2})
	}
	if s, ok := mbtiSimilarity(self.MBTIType, other.MBTIType); ok {
		parts = append(parts, part{s, 0.2})
	}
	if s, ok := zodiacSimilarity(self.ZodiacSign, other.ZodiacSign); ok {
		parts = append(parts, part{s, 0.1})
	}

	// Sin ningun dato de personalidad no hay señal: punto medio.
	if len(parts) == 0 {
		return 50
	}

	var weighted, total float64
	for _, p := range parts {
		weighted += p.score * p.weight
		total += p.weight
	}
	score := int(weighted/total + 0.5)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// traitSimilarity es 100 menos la diferencia absoluta media sobre los rasgos
// compartidos. Conmutativa por construccion.
func traitSimilarity(a, b map[string]int) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	var sum, n float64
	for trait, av := range a {
		bv, ok := b[trait]
		if !ok {
			continue
		}
		diff := float64(av - bv)
		if diff < 0 {
			diff = -diff
		}
		if diff > 100 {
			diff = 100
		}
		sum += diff
		n++
	}
	if n == 0 {
		return 0, false
	}
	return 100 - sum/n, true
}

// mbtiSimilarity cuenta letras coincidentes por posicion: 25 puntos cada una.
func mbtiSimilarity(a, b string) (float64, bool) {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if len(a) != 4 || len(b) != 4 {
		return 0, false
	}
	var shared float64
	for i := 0; i < 4; i++ {
		if a[i] == b[i] {
			shared++
		}
	}
	return shared * 25, true
}

var zodiacElements = map[string]string{
	"aries": "fire", "leo": "fire", "sagittarius": "fire",
	"taurus": "earth", "virgo": "earth", "capricorn": "earth",
	"gemini": "air", "libra": "air", "aquarius": "air",
	"cancer": "water", "scorpio": "water", "pisces": "water",
}

// zodiacSimilarity: mismo signo 100, mismo elemento 75, resto 40.
func zodiacSimilarity(a, b string) (float64, bool) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	ea, okA := zodiacElements[a]
	eb, okB := zodiacElements[b]
	if !okA || !okB {
		return 0, false
	}
	switch {
	case a == b:
		return 100, true
	case ea == eb:
		return 75, true
	default:
		return 40, true
	}
}
