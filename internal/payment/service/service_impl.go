package service

import (
	"context"
	"sort"
	"strings"

	"github.com/grazebox/backoffice/internal/config"
	"github.com/grazebox/backoffice/internal/fault"
	"github.com/grazebox/backoffice/internal/normalize"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	"github.com/grazebox/backoffice/internal/payment/domain"
	"github.com/grazebox/backoffice/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store   *store.Store
	Log     *zap.Logger
	Pricing *config.PricingConfigHolder
}

type Service struct {
	store   *store.Store
	log     *zap.Logger
	pricing *config.PricingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		store:   p.Store,
		log:     p.Log.Named("payment.service"),
		pricing: p.Pricing,
	}
}

// ForAccount derives the payment ledger from the account's current orders.
// The view has no independent lifecycle: it is recomputed on every call
// and never persisted.
func (s *Service) ForAccount(ctx context.Context, gr string) (domain.View, error) {
	if strings.TrimSpace(gr) == "" {
		return domain.View{}, fault.Validationf("account identifier is required")
	}

	orders := s.store.OrdersByGR(gr)
	if len(orders) == 0 {
		return domain.View{}, fault.NotFoundf("no payments for %s", normalize.ID(gr))
	}

	entries := make([]domain.Entry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, domain.Entry{
			Date:    o.OrderDate,
			OrderID: o.OrderID,
			Amount:  o.Payment,
			Status:  entryStatus(o),
			TxnID:   txnID(o.OrderID),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })

	return domain.View{
		GR:     gr,
		Method: s.methodFor(gr),
		Log:    entries,
	}, nil
}

func (s *Service) AccountCount(ctx context.Context) (int, error) {
	return s.store.OrderAccountCount(), nil
}

func entryStatus(o orderdomain.Order) string {
	if o.Status == orderdomain.StatusCommitted {
		return domain.StatusPaid
	}
	return domain.StatusPending
}

// txnID derives a deterministic transaction id from the order id.
func txnID(orderID string) string {
	return "txn_" + strings.ReplaceAll(strings.ToLower(orderID), "-", "_")
}

// methodFor picks the payment method label from the lookup table keyed by
// the last three characters of the account identifier.
func (s *Service) methodFor(gr string) string {
	cfg := s.pricing.Get()

	key := "001"
	if g := normalize.ID(gr); len(g) >= 3 {
		key = g[len(g)-3:]
	}
	if method, ok := cfg.PaymentMethods[key]; ok {
		return method
	}
	return cfg.DefaultPaymentMethod
}
