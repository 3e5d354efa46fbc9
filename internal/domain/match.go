package domain

// MatchResult empareja un perfil candidato con su compatibilidad 0-100.
// Es un valor derivado: se regenera en cada invocacion y nunca se persiste.
type MatchResult struct {
	Profile       Profile `json:"profile"`
	Compatibility int     `json:"compatibility"`
}

// Summary es el mini analisis de compatibilidad entre dos perfiles,
// junto con el saldo que queda despues de debitar el credito.
type Summary struct {
	Text        string  `json:"text"`
	CreditsLeft Balance `json:"credits_left"`
}
