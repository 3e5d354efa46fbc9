package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/email"
	"uni-match/internal/repository"
)

var (
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// LedgerService coordina las reglas de negocio de creditos: dos saldos por
// cuenta (free y paid), consumo en orden fijo free-antes-que-paid y recarga
// solo del saldo paid. Los saldos nunca quedan negativos.
type LedgerService struct {
	logger      *zap.Logger
	accounts    repository.AccountRepository
	cache       BalanceCache
	emailSender email.Sender

	// Un mutex por cuenta serializa consumeOne/addPaid y evita que dos
	// requests concurrentes observen free=1 y decrementen ambos.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedgerService(logger *zap.Logger, accounts repository.AccountRepository, cache BalanceCache, emailSender email.Sender) *LedgerService {
	if cache == nil {
		cache = NoopBalanceCache{}
	}
	return &LedgerService{
		logger:      logger,
		accounts:    accounts,
		cache:       cache,
		emailSender: emailSender,
		locks:       make(map[string]*sync.Mutex),
	}
}

// GetBalance devuelve los saldos de la cuenta. Para una cuenta desconocida
// devuelve el saldo por defecto {3, 0} sin persistir nada; la fila recien se
// materializa con la primera mutacion.
func (s *LedgerService) GetBalance(ctx context.Context, accountID string) (domain.Balance, error) {
	accountID = NormalizeAccountID(accountID)

	if balance, ok := s.cache.Get(ctx, accountID); ok {
		return balance, nil
	}

	account, err := s.getOrDefault(ctx, accountID)
	if err != nil {
		return domain.Balance{}, err
	}

	balance := account.Balance()
	s.cache.Set(ctx, accountID, balance)
	return balance, nil
}

// ConsumeOne debita un credito: primero free, despues paid. Si ambos saldos
// estan en cero no muta nada y devuelve ErrInsufficientCredit.
func (s *LedgerService) ConsumeOne(ctx context.Context, accountID string) (domain.Balance, error) {
	accountID = NormalizeAccountID(accountID)

	unlock := s.lock(accountID)
	defer unlock()

	account, err := s.getOrDefault(ctx, accountID)
	if err != nil {
		return domain.Balance{}, err
	}

	switch {
	case account.FreeCredits > 0:
		account.FreeCredits--
	case account.PaidCredits > 0:
		account.PaidCredits--
	default:
		return account.Balance(), ErrInsufficientCredit
	}

	if err := s.persist(ctx, account); err != nil {
		return domain.Balance{}, err
	}
	return account.Balance(), nil
}

// AddPaid acredita n creditos pagos. n negativo falla con ErrInvalidAmount
// sin tocar los saldos; n cero es un no-op valido.
func (s *LedgerService) AddPaid(ctx context.Context, accountID string, n int) (domain.Balance, error) {
	accountID = NormalizeAccountID(accountID)
	if n < 0 {
		return domain.Balance{}, ErrInvalidAmount
	}

	unlock := s.lock(accountID)
	defer unlock()

	account, err := s.getOrDefault(ctx, accountID)
	if err != nil {
		return domain.Balance{}, err
	}

	account.PaidCredits += n
	if err := s.persist(ctx, account); err != nil {
		return domain.Balance{}, err
	}

	s.sendReceipt(ctx, accountID, n, account.Balance())
	return account.Balance(), nil
}

// Reset restaura la cuenta a los saldos por defecto. Operacion administrativa.
func (s *LedgerService) Reset(ctx context.Context, accountID string) (domain.Balance, error) {
	accountID = NormalizeAccountID(accountID)

	unlock := s.lock(accountID)
	defer unlock()

	account, err := s.getOrDefault(ctx, accountID)
	if err != nil {
		return domain.Balance{}, err
	}

	account.FreeCredits = domain.DefaultFreeCredits
	account.PaidCredits = domain.DefaultPaidCredits
	if err := s.persist(ctx, account); err != nil {
		return domain.Balance{}, err
	}
	return account.Balance(), nil
}

func (s *LedgerService) getOrDefault(ctx context.Context, accountID string) (domain.Account, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewAccount(accountID), nil
	}
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *LedgerService) persist(ctx context.Context, account domain.Account) error {
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Upsert(ctx, account); err != nil {
		s.cache.Invalidate(ctx, account.ID)
		return err
	}
	s.cache.Set(ctx, account.ID, account.Balance())
	return nil
}

func (s *LedgerService) sendReceipt(ctx context.Context, accountID string, pack int, balance domain.Balance) {
	if s.emailSender == nil || pack == 0 || !strings.Contains(accountID, "@") {
		return
	}
	if err := s.emailSender.SendPurchaseReceipt(ctx, accountID, pack, balance.PaidLeft); err != nil {
		if s.logger != nil {
			s.logger.Warn("send purchase receipt failed", zap.Error(err), zap.String("account", accountID))
		}
	}
}

func (s *LedgerService) lock(accountID string) func() {
	s.mu.Lock()
	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// NormalizeAccountID normaliza el identificador de cuenta (email o UUID).
func NormalizeAccountID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
