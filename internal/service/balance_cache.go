package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"uni-match/internal/domain"
)

// BalanceCache cachea saldos de cuenta. El saldo se lee en casi todas las
// pantallas, asi que la lectura va cache-first y toda mutacion del ledger
// reescribe (o invalida) la entrada.
type BalanceCache interface {
	Get(ctx context.Context, accountID string) (domain.Balance, bool)
	Set(ctx context.Context, accountID string, balance domain.Balance)
	Invalidate(ctx context.Context, accountID string)
}

// NoopBalanceCache se usa cuando Redis no esta configurado.
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(context.Context, string) (domain.Balance, bool) { return domain.Balance{}, false }
func (NoopBalanceCache) Set(context.Context, string, domain.Balance)        {}
func (NoopBalanceCache) Invalidate(context.Context, string)                 {}

type redisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisBalanceCache crea un cache de saldos con TTL sobre Redis.
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) BalanceCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisBalanceCache{
		client: client,
		ttl:    ttl,
		prefix: "credits:balance:",
	}
}

func (c *redisBalanceCache) Get(ctx context.Context, accountID string) (domain.Balance, bool) {
	raw, err := c.client.Get(ctx, c.prefix+accountID).Result()
	if err != nil {
		return domain.Balance{}, false
	}
	var balance domain.Balance
	if err := json.Unmarshal([]byte(raw), &balance); err != nil {
		return domain.Balance{}, false
	}
	// Refresca el TTL: la cuenta esta activa.
	_ = c.client.Expire(ctx, c.prefix+accountID, c.ttl).Err()
	return balance, true
}

func (c *redisBalanceCache) Set(ctx context.Context, accountID string, balance domain.Balance) {
	raw, err := json.Marshal(balance)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+accountID, raw, c.ttl).Err()
}

func (c *redisBalanceCache) Invalidate(ctx context.Context, accountID string) {
	_ = c.client.Del(ctx, c.prefix+accountID).Err()
}
