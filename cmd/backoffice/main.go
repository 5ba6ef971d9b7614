package main

import (
	"github.com/grazebox/backoffice/internal/activity"
	"github.com/grazebox/backoffice/internal/clock"
	"github.com/grazebox/backoffice/internal/complaint"
	"github.com/grazebox/backoffice/internal/config"
	"github.com/grazebox/backoffice/internal/customer"
	"github.com/grazebox/backoffice/internal/idgen"
	"github.com/grazebox/backoffice/internal/message"
	"github.com/grazebox/backoffice/internal/observability"
	"github.com/grazebox/backoffice/internal/order"
	"github.com/grazebox/backoffice/internal/payment"
	"github.com/grazebox/backoffice/internal/server"
	"github.com/grazebox/backoffice/internal/store"
	"github.com/grazebox/backoffice/internal/subscription"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		store.Module,
		fx.Provide(idgen.New),

		// Functional domains
		activity.Module,
		customer.Module,
		subscription.Module,
		order.Module,
		complaint.Module,
		payment.Module,
		message.Module,

		// HTTP facade
		server.Module,
	)
	app.Run()
}
