package service

import (
	"context"
	"strings"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	activityservice "github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/normalize"
	"github.com/grazebox/backoffice/internal/store"
	"github.com/grazebox/backoffice/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store    *store.Store
	Log      *zap.Logger
	Recorder *activityservice.Recorder
}

type Service struct {
	store    *store.Store
	log      *zap.Logger
	recorder *activityservice.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		store:    p.Store,
		log:      p.Log.Named("subscription.service"),
		recorder: p.Recorder,
	}
}

func (s *Service) Get(ctx context.Context, gr string) (domain.Subscription, error) {
	sub, ok := s.store.SubscriptionByGR(gr)
	if !ok {
		return domain.Subscription{}, fault.NotFoundf("subscription for %s not found", normalize.ID(gr))
	}
	return sub, nil
}

// Update mutates the subscription in place. Absent fields keep their prior
// values; recipe count and box size must be non-negative integers.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Subscription, error) {
	if strings.TrimSpace(req.GR) == "" {
		return domain.Subscription{}, fault.Validationf("account identifier is required")
	}
	if req.Recipes != nil && *req.Recipes < 0 {
		return domain.Subscription{}, fault.Validationf("recipe count cannot be negative")
	}
	if req.BoxSize != nil && *req.BoxSize < 0 {
		return domain.Subscription{}, fault.Validationf("box size cannot be negative")
	}

	var updated domain.Subscription
	err := s.store.RunCommand(func(tx *store.Tx) error {
		old, ok := tx.SubscriptionByGR(req.GR)
		if !ok {
			return fault.NotFoundf("subscription for %s not found", normalize.ID(req.GR))
		}

		updated = old
		if req.Status != nil {
			updated.Status = *req.Status
		}
		if req.Frequency != nil {
			updated.Frequency = *req.Frequency
		}
		if req.Recipes != nil {
			updated.Recipes = *req.Recipes
		}
		if req.BoxSize != nil {
			updated.BoxSize = *req.BoxSize
		}
		if req.DeliveryDay != nil {
			updated.DeliveryDay = *req.DeliveryDay
		}
		tx.UpdateSubscription(updated)

		var changes []activitydomain.Change
		changes = activityservice.Diff(changes, "status", "Status", old.Status, updated.Status)
		changes = activityservice.Diff(changes, "frequency", "Frequency", old.Frequency, updated.Frequency)
		changes = activityservice.Diff(changes, "recipes", "Recipes", old.Recipes, updated.Recipes)
		changes = activityservice.Diff(changes, "box_size", "Box size", old.BoxSize, updated.BoxSize)
		changes = activityservice.Diff(changes, "delivery_day", "Delivery day", old.DeliveryDay, updated.DeliveryDay)

		// Subscription updates carry the structured per-field map on top of
		// the change strings.
		s.recorder.RecordChange(tx, req.GR,
			activitydomain.CategorySubscriptionUpdate,
			"Subscription updated",
			changes, true)
		return nil
	})
	if err != nil {
		return domain.Subscription{}, err
	}

	s.log.Info("subscription updated", zap.String("gr", normalize.ID(req.GR)))
	return updated, nil
}
