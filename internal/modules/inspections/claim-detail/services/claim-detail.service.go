package services

import (
	"context"

	"go.uber.org/zap"

	claimsDto "fpm-inspections-core/internal/modules/core-services/claims/dto"
	claimsServices "fpm-inspections-core/internal/modules/core-services/claims/services"
)

// ClaimDetailService - vue facture d'un PEC, servie depuis le cache quand possible.
// Le cache est une optimisation : ses erreurs sont journalisées, jamais remontées.
type ClaimDetailService struct {
	resolver *claimsServices.ClaimDetailResolver
	reader   claimsServices.Reader
	cache    DetailCache
	logger   *zap.Logger
}

func NewClaimDetailService(
	resolver *claimsServices.ClaimDetailResolver,
	reader claimsServices.Reader,
	cache DetailCache,
	logger *zap.Logger,
) *ClaimDetailService {
	return &ClaimDetailService{
		resolver: resolver,
		reader:   reader,
		cache:    cache,
		logger:   logger.Named("claim_detail_api"),
	}
}

// Get - un PEC inconnu donne un détail vide, non mis en cache
func (s *ClaimDetailService) Get(ctx context.Context, claimID string) (*claimsDto.ClaimDetail, error) {
	id, err := claimsServices.ValidateClaimID(claimID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("lecture cache détail impossible", zap.String("num_pec", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	var detail *claimsDto.ClaimDetail
	err = s.reader.Read(ctx, func(store claimsServices.ReportStore) error {
		var err error
		detail, err = s.resolver.GetClaimDetail(ctx, store, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil && !detail.IsEmpty() {
		if err := s.cache.Set(ctx, detail); err != nil {
			s.logger.Warn("écriture cache détail impossible", zap.String("num_pec", id), zap.Error(err))
		}
	}
	return detail, nil
}
