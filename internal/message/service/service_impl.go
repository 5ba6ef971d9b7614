package service

import (
	"context"
	"strings"

	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/message/domain"
	"github.com/grazebox/backoffice/internal/normalize"
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
		log:   p.Log.Named("message.service"),
	}
}

func (s *Service) Thread(ctx context.Context, gr string) (domain.Thread, error) {
	if strings.TrimSpace(gr) == "" {
		return domain.Thread{}, fault.Validationf("account identifier is required")
	}

	thread, ok := s.store.ThreadByGR(gr)
	if !ok {
		// Accounts without a thread read as an empty log.
		return domain.Thread{GR: normalize.ID(gr), Log: []domain.Entry{}}, nil
	}
	if thread.Log == nil {
		thread.Log = []domain.Entry{}
	}
	return thread, nil
}
