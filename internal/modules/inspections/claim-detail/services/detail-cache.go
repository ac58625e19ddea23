package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fpm-inspections-core/internal/infrastructure/database/redis"
	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
)

// DetailCache cache court des vues facture
type DetailCache interface {
	Get(ctx context.Context, claimID string) (*claimsDto.ClaimDetail, error)
	Set(ctx context.Context, detail *claimsDto.ClaimDetail) error
}

// RedisDetailCache - clé claim_detail, TTL de la config (CLAIM_DETAIL_CACHE_TTL)
type RedisDetailCache struct {
	client *redis.Client
}

func NewRedisDetailCache(client *redis.Client) *RedisDetailCache {
	return &RedisDetailCache{client: client}
}

// Get nil, nil si absent
func (c *RedisDetailCache) Get(ctx context.Context, claimID string) (*claimsDto.ClaimDetail, error) {
	payload, err := c.client.GetWithPattern(ctx, redis.PatternClaimDetail, claimID)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var detail claimsDto.ClaimDetail
	if err := json.Unmarshal([]byte(payload), &detail); err != nil {
		return nil, fmt.Errorf("décodage détail %s en cache: %w", claimID, err)
	}
	return &detail, nil
}

func (c *RedisDetailCache) Set(ctx context.Context, detail *claimsDto.ClaimDetail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encodage détail: %w", err)
	}
	return c.client.SetWithPattern(ctx, redis.PatternClaimDetail, payload, detail.ClaimID)
}
