package service

import (
	"context"
	"strings"

	"github.com/grazebox/backoffice/internal/activity/domain"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store *store.Store
	Log   *zap.Logger
}

type Service struct {
	store *store.Store
	log   *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("activity.service"),
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Event, error) {
	if strings.TrimSpace(req.GR) == "" {
		return nil, fault.Validationf("account identifier is required")
	}

	events := s.store.EventsByGR(req.GR)
	if req.Category == "" && req.Actor == "" {
		return events, nil
	}

	filtered := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if req.Category != "" && e.Category != req.Category {
			continue
		}
		if req.Actor != "" && e.Actor != req.Actor {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (s *Service) Clear(ctx context.Context, gr string) (domain.ClearResult, error) {
	if strings.TrimSpace(gr) == "" {
		return domain.ClearResult{}, fault.Validationf("account identifier is required")
	}

	var cleared int
	err := s.store.RunCommand(func(tx *store.Tx) error {
		cleared = tx.ClearEvents(gr)
		return nil
	})
	if err != nil {
		return domain.ClearResult{}, err
	}

	s.log.Info("activity log cleared", zap.String("gr", gr), zap.Int("cleared", cleared))
	return domain.ClearResult{ClearedCount: cleared}, nil
}
