package domain

import "time"

// Codigos de rasgo esperados en los mapas de personalidad.
// Los valores van de 0 a 100.
const (
	TraitOpenness          = "openness"
	TraitConscientiousness = "conscientiousness"
	TraitExtraversion      = "extraversion"
	TraitAgreeableness     = "agreeableness"
	TraitNeuroticism       = "neuroticism"

	TraitNarcissism  = "narcissism"
	TraitMachiavelli = "machiavellianism"
	TraitPsychopathy = "psychopathy"
)

// Profile representa los atributos matcheables de una persona.
type Profile struct {
	ID          string         `json:"id"`
	Email       string         `json:"email,omitempty"`
	DisplayName string         `json:"display_name"`
	Institution string         `json:"institution"`
	Bio         string         `json:"bio,omitempty"`
	City        string         `json:"city,omitempty"`
	Age         int            `json:"age,omitempty"`
	MBTIType    string         `json:"mbti,omitempty"`
	ZodiacSign  string         `json:"zodiac_sign,omitempty"`
	PhotoURL    string         `json:"photo_url,omitempty"`
	BigFive     map[string]int `json:"big_five,omitempty"`
	DarkTriad   map[string]int `json:"dark_triad,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProfileUpdate es una actualizacion tipada por campo.
// Un puntero nil significa "no tocar ese campo". Reemplaza al update
// dinamico por nombre de campo que tenia la version anterior del sistema.
type ProfileUpdate struct {
	DisplayName *string         `json:"display_name,omitempty"`
	Institution *string         `json:"institution,omitempty"`
	Bio         *string         `json:"bio,omitempty"`
	City        *string         `json:"city,omitempty"`
	Age         *int            `json:"age,omitempty"`
	MBTIType    *string         `json:"mbti,omitempty"`
	ZodiacSign  *string         `json:"zodiac_sign,omitempty"`
	PhotoURL    *string         `json:"photo_url,omitempty"`
	BigFive     *map[string]int `json:"big_five,omitempty"`
	DarkTriad   *map[string]int `json:"dark_triad,omitempty"`
}

// IsZero indica si el update no toca ningun campo.
func (u ProfileUpdate) IsZero() bool {
	return u.DisplayName == nil &&
		u.Institution == nil &&
		u.Bio == nil &&
		u.City == nil &&
		u.Age == nil &&
		u.MBTIType == nil &&
		u.ZodiacSign == nil &&
		u.PhotoURL == nil &&
		u.BigFive == nil &&
		u.DarkTriad == nil
}

// Apply devuelve una copia del perfil con los campos del update aplicados.
func (u ProfileUpdate) Apply(p Profile) Profile {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.Institution != nil {
		p.Institution = *u.Institution
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.MBTIType != nil {
		p.MBTIType = *u.MBTIType
	}
	if u.ZodiacSign != nil {
		p.ZodiacSign = *u.ZodiacSign
	}
	if u.PhotoURL != nil {
		p.PhotoURL = *u.PhotoURL
	}
	if u.BigFive != nil {
		p.BigFive = *u.BigFive
	}
	if u.DarkTriad != nil {
		p.DarkTriad = *u.DarkTriad
	}
	p.UpdatedAt = time.Now().UTC()
	return p
}
