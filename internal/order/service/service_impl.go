package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	activityservice "github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/clock"
	"github.com/grazebox/backoffice/internal/config"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/idgen"
	"github.com/grazebox/backoffice/internal/normalize"
	"github.com/grazebox/backoffice/internal/order/domain"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	deliveryDateLayout = "2006-01-02"
	// Orders need at least three days of lead time before delivery.
	minLeadTime = 72 * time.Hour

	minBoxSize = 1
	maxBoxSize = 5
	minRecipes = 2
	maxRecipes = 5
)

type Params struct {
	fx.In

	Store    *store.Store
	Log      *zap.Logger
	Clock    clock.Clock
	IDs      idgen.Generator
	Pricing  *config.PricingConfigHolder
	Recorder *activityservice.Recorder
}

type Service struct {
	store    *store.Store
	log      *zap.Logger
	clock    clock.Clock
	ids      idgen.Generator
	pricing  *config.PricingConfigHolder
	recorder *activityservice.Recorder
}

func New(p Params) domain.Service {
	return &Service{
		store:    p.Store,
		log:      p.Log.Named("order.service"),
		clock:    p.Clock,
		ids:      p.IDs,
		pricing:  p.Pricing,
		recorder: p.Recorder,
	}
}

func (s *Service) List(ctx context.Context, gr string) ([]domain.Order, error) {
	if strings.TrimSpace(gr) == "" {
		return nil, fault.Validationf("account identifier is required")
	}
	orders := s.store.OrdersByGR(gr)
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Generate creates a pending order. The payment amount is fixed here from
// the price table in force and is never recomputed afterwards.
func (s *Service) Generate(ctx context.Context, req domain.GenerateOrderRequest) (domain.Order, error) {
	if strings.TrimSpace(req.GR) == "" {
		return domain.Order{}, fault.Validationf("account identifier is required")
	}

	delivery, err := time.Parse(deliveryDateLayout, req.DeliveryDate)
	if err != nil {
		return domain.Order{}, fault.Validationf("invalid delivery date format, expected YYYY-MM-DD")
	}
	if delivery.Before(s.clock.Now().Add(minLeadTime)) {
		return domain.Order{}, fault.Validationf("delivery date must be at least 3 days from today")
	}

	if req.BoxSize < minBoxSize || req.BoxSize > maxBoxSize {
		return domain.Order{}, fault.Validationf("box size must be between %d and %d", minBoxSize, maxBoxSize)
	}
	if len(req.Recipes) < minRecipes || len(req.Recipes) > maxRecipes {
		return domain.Order{}, fault.Validationf("must select between %d and %d recipes", minRecipes, maxRecipes)
	}

	prices := s.pricing.Get().RecipePrices
	var total float64
	for _, recipe := range req.Recipes {
		// Recipes missing from the price table contribute zero.
		total += prices[recipe.ID] * float64(req.BoxSize)
	}
	total = math.Round(total*100) / 100

	now := s.clock.Now()
	order := domain.Order{
		GR:        req.GR,
		OrderID:   s.ids.OrderID(now),
		OrderDate: req.DeliveryDate + "T12:00:00Z",
		Status:    domain.StatusPending,
		BoxSize:   req.BoxSize,
		Recipes:   req.Recipes,
		Payment:   total,
		// Courier details are populated closer to delivery.
		CourierDetails: nil,
	}

	err = s.store.RunCommand(func(tx *store.Tx) error {
		tx.AppendOrder(order)
		s.recorder.RecordAction(tx, req.GR,
			activitydomain.CategoryOrderCreated,
			"Order generated",
			fmt.Sprintf("Order %s created for %s", order.OrderID, req.DeliveryDate))
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.Info("order generated",
		zap.String("gr", normalize.ID(req.GR)),
		zap.String("order_id", order.OrderID),
		zap.Float64("payment", order.Payment),
	)
	return order, nil
}

// Cancel physically removes a pending order from the collection.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return fault.Validationf("order id is required")
	}

	err := s.store.RunCommand(func(tx *store.Tx) error {
		order, ok := tx.OrderByID(orderID)
		if !ok {
			return fault.NotFoundf("order %s not found", orderID)
		}
		if order.Status != domain.StatusPending {
			return fault.Conflictf("only pending orders can be cancelled")
		}

		tx.RemoveOrder(orderID)
		s.recorder.RecordAction(tx, order.GR,
			activitydomain.CategoryOrderDeleted,
			"Order cancelled and removed",
			fmt.Sprintf("Order %s was cancelled and permanently removed (£%.2f)", orderID, order.Payment))
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("order cancelled", zap.String("order_id", orderID))
	return nil
}
