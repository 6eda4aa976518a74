package service

import (
	"context"

	"hvac_monitor/internal/models"
	"hvac_monitor/internal/repository"
)

// MaxHistoryLimit caps a single history query.
const MaxHistoryLimit = 86400

type HistoryService struct {
	readings repository.ReadingRepo
}

func NewHistoryService(readings repository.ReadingRepo) *HistoryService {
	return &HistoryService{readings: readings}
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.Reading, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	limit := f.Limit
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return s.readings.List(ctx, from, to, limit)
}
