package redis

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const keyPrefix = "fpm_inspections"

// Noms des patterns utilisés par les modules
const (
	PatternClaimDetail  = "claim_detail"
	PatternTaskState    = "task_state"
	PatternTaskResult   = "task_result"
	PatternTaskProgress = "task_progress"
)

var validKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_:\-]+$`)

// RedisKeyPattern - fpm_inspections_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string
	Context string
	TTL     time.Duration // 0 = pas d'expiration (canaux pub/sub)
}

// KeyTTLs durées de vie configurables
type KeyTTLs struct {
	ClaimDetail time.Duration
	Task        time.Duration
}

// RedisKeyGenerator génère et valide les clés Redis du service
type RedisKeyGenerator struct {
	patterns map[string]RedisKeyPattern
}

func NewRedisKeyGenerator(ttls KeyTTLs) *RedisKeyGenerator {
	return &RedisKeyGenerator{
		patterns: map[string]RedisKeyPattern{
			PatternClaimDetail:  {Domain: "cache", Context: "claim_detail", TTL: ttls.ClaimDetail},
			PatternTaskState:    {Domain: "task", Context: "state", TTL: ttls.Task},
			PatternTaskResult:   {Domain: "task", Context: "result", TTL: ttls.Task},
			PatternTaskProgress: {Domain: "task", Context: "progress"},
		},
	}
}

// GenerateKey - fpm_inspections_{domain}_{context}:{id1_id2...}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := rkg.patterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	prefix := fmt.Sprintf("%s_%s_%s", keyPrefix, pattern.Domain, pattern.Context)
	if len(identifier) == 0 {
		return prefix, nil
	}

	key := fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_"))
	if err := rkg.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (time.Duration, error) {
	pattern, exists := rkg.patterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, keyPrefix+"_") {
		return fmt.Errorf("clé doit commencer par '%s_': %s", keyPrefix, key)
	}

	return nil
}
