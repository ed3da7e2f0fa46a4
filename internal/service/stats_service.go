package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mystic-books/internal/model"
	"mystic-books/internal/repository"
)

// statsService implements StatsService.
type statsService struct {
	statsRepo repository.StatsRepository
	logger    zerolog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(statsRepo repository.StatsRepository, logger zerolog.Logger) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		logger:    logger.With().Str("service", "stats").Logger(),
	}
}

// Summary gathers the counts concurrently. Each count is an independent
// read, so ordering does not matter; the first failure cancels the rest.
func (s *statsService) Summary(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.statsRepo.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Admins, err = s.statsRepo.CountUsersByRole(ctx, model.RoleAdmin)
		return err
	})
	g.Go(func() (err error) {
		stats.Librarians, err = s.statsRepo.CountUsersByRole(ctx, model.RoleLibrarian)
		return err
	})
	g.Go(func() (err error) {
		stats.Users, err = s.statsRepo.CountUsersByRole(ctx, model.RoleUser)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalBooks, err = s.statsRepo.CountBooks(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalOrders, err = s.statsRepo.CountOrders(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingOrders, err = s.statsRepo.CountOrdersByStatus(ctx, model.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedOrders, err = s.statsRepo.CountOrdersByStatus(ctx, model.StatusCompleted)
		return err
	})
	g.Go(func() (err error) {
		stats.CancelledOrders, err = s.statsRepo.CountOrdersByStatus(ctx, model.StatusCancelled)
		return err
	})
	g.Go(func() (err error) {
		stats.PaidOrders, err = s.statsRepo.CountPaidOrders(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalReviews, err = s.statsRepo.CountReviews(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("stats gather failed")
		return nil, fmt.Errorf("failed to gather stats: %w", err)
	}

	return &stats, nil
}
