package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"uni-match/internal/domain"
	"uni-match/internal/llm"
	"uni-match/internal/repository"
)

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrRateLimited         = errors.New("rate limited")
)

const defaultSummaryTimeout = 10 * time.Second

// SummaryService produce el mini analisis de compatibilidad entre el
// solicitante y un candidato, debitando exactamente un credito por llamada.
// El orden es generate-then-debit: una generacion fallida nunca deja un
// credito debitado sin respuesta, y el unico retry envuelve solo la
// generacion, asi que no puede duplicar el debito.
type SummaryService struct {
	logger   *zap.Logger
	ledger   *LedgerService
	profiles repository.ProfileRepository
	llm      llm.Client
	limiter  SummaryRateLimiter
	timeout  time.Duration
}

func NewSummaryService(logger *zap.Logger, ledger *LedgerService, profiles repository.ProfileRepository, client llm.Client, limiter SummaryRateLimiter, timeout time.Duration) *SummaryService {
	if timeout <= 0 {
		timeout = defaultSummaryTimeout
	}
	return &SummaryService{
		logger:   logger,
		ledger:   ledger,
		profiles: profiles,
		llm:      client,
		limiter:  limiter,
		timeout:  timeout,
	}
}

// Summarize verifica saldo, resuelve ambos perfiles, genera el texto y recien
// entonces debita. Devuelve el texto junto con el saldo post-debito.
func (s *SummaryService) Summarize(ctx context.Context, requester, candidateID string) (domain.Summary, error) {
	requester = NormalizeAccountID(requester)

	if s.limiter != nil && !s.limiter.Allow(requester) {
		return domain.Summary{}, ErrRateLimited
	}

	balance, err := s.ledger.GetBalance(ctx, requester)
	if err != nil {
		return domain.Summary{}, err
	}
	if balance.Total() < 1 {
		return domain.Summary{}, ErrInsufficientCredit
	}

	me, err := s.resolveRequester(ctx, requester)
	if err != nil {
		return domain.Summary{}, err
	}

	candidate, err := s.profiles.GetByID(ctx, candidateID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Summary{}, ErrNoSuchProfile
	}
	if err != nil {
		return domain.Summary{}, err
	}

	text, err := s.generate(ctx, me, candidate)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("summary generation failed", zap.Error(err), zap.String("requester", requester))
		}
		return domain.Summary{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	creditsLeft, err := s.ledger.ConsumeOne(ctx, requester)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summary{Text: text, CreditsLeft: creditsLeft}, nil
}

// generate llama al proveedor de texto con timeout y un unico reintento.
func (s *SummaryService) generate(ctx context.Context, me, candidate domain.Profile) (string, error) {
	prompt := buildSummaryPrompt(me, candidate)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		text, err := s.llm.Generate(callCtx, prompt)
		cancel()
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (s *SummaryService) resolveRequester(ctx context.Context, requester string) (domain.Profile, error) {
	me, err := s.profiles.GetByEmail(ctx, requester)
	if err == nil {
		return me, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, err
	}
	me, err = s.profiles.GetByID(ctx, requester)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrNoSuchProfile
	}
	return me, err
}

func buildSummaryPrompt(me, candidate domain.Profile) string {
	var b strings.Builder
	b.WriteString("Write a short compatibility note (3 sentences max) for two university students.\n")
	writeProfileFacts(&b, "Person A", me)
	writeProfileFacts(&b, "Person B", candidate)
	b.WriteString("Address Person A directly, mention Person B by name, stay positive and concrete.")
	return b.String()
}

func writeProfileFacts(b *strings.Builder, label string, p domain.Profile) {
	fmt.Fprintf(b, "%s: %s, %s.", label, p.DisplayName, p.Institution)
	if p.MBTIType != "" {
		fmt.Fprintf(b, " MBTI %s.", p.MBTIType)
	}
	if p.ZodiacSign != "" {
		fmt.Fprintf(b, " Zodiac %s.", p.ZodiacSign)
	}
	for trait, value := range p.BigFive {
		fmt.Fprintf(b, " %s=%d.", trait, value)
	}
	b.WriteString("\n")
}

// SummaryRateLimiter limita la frecuencia de resumenes por cuenta.
type SummaryRateLimiter interface {
	Allow(key string) bool
}

type summaryRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewSummaryRateLimiter crea un rate limiter en memoria.
func NewSummaryRateLimiter(window time.Duration, max int) SummaryRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &summaryRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *summaryRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}
