package domain

import "time"

// Saldos iniciales para toda cuenta nueva.
const (
	DefaultFreeCredits = 3
	DefaultPaidCredits = 0
)

// Account es la identidad que posee creditos dentro del sistema.
// Se identifica por email normalizado o por el id del perfil.
type Account struct {
	ID          string    `json:"id"`
	FreeCredits int       `json:"free_credits"`
	PaidCredits int       `json:"paid_credits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAccount crea una cuenta con los saldos por defecto {3, 0}.
func NewAccount(id string) Account {
	now := time.Now().UTC()
	return Account{
		ID:          id,
		FreeCredits: DefaultFreeCredits,
		PaidCredits: DefaultPaidCredits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Balance es la vista de saldos que viaja por el API.
type Balance struct {
	FreeLeft int `json:"freeLeft"`
	PaidLeft int `json:"paidLeft"`
}

func (a Account) Balance() Balance {
	return Balance{FreeLeft: a.FreeCredits, PaidLeft: a.PaidCredits}
}

// Total devuelve la suma de creditos disponibles.
func (b Balance) Total() int {
	return b.FreeLeft + b.PaidLeft
}
