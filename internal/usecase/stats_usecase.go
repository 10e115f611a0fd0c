package usecase

import (
	"context"

	"tescilofisi-backend/internal/domain"
)

type statsUsecase struct {
	statsRepo domain.StatsRepository
}

func NewStatsUsecase(statsRepo domain.StatsRepository) domain.StatsUsecase {
	return &statsUsecase{statsRepo: statsRepo}
}

func (u *statsUsecase) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return u.statsRepo.GetStats(ctx)
}
