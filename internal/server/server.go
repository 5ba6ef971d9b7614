package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
	"github.com/grazebox/backoffice/internal/config"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	messagedomain "github.com/grazebox/backoffice/internal/message/domain"
	"github.com/grazebox/backoffice/internal/observability"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	paymentdomain "github.com/grazebox/backoffice/internal/payment/domain"
	"github.com/grazebox/backoffice/internal/store"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Engine  *gin.Engine
	Cfg     config.Config
	Log     *zap.Logger
	Metrics *observability.Metrics
	Store   *store.Store

	CustomerSvc     customerdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	OrderSvc        orderdomain.Service
	ComplaintSvc    complaintdomain.Service
	PaymentSvc      paymentdomain.Service
	MessageSvc      messagedomain.Service
	ActivitySvc     activitydomain.Service
}

// Server is the query/command facade over the domain services, exposed as
// JSON endpoints for the dashboard.
type Server struct {
	engine  *gin.Engine
	cfg     config.Config
	log     *zap.Logger
	metrics *observability.Metrics
	store   *store.Store

	customerSvc     customerdomain.Service
	subscriptionSvc subscriptiondomain.Service
	orderSvc        orderdomain.Service
	complaintSvc    complaintdomain.Service
	paymentSvc      paymentdomain.Service
	messageSvc      messagedomain.Service
	activitySvc     activitydomain.Service
}

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(log),
		ErrorHandlingMiddleware(),
	)
	return engine
}

func New(p Params) *Server {
	return &Server{
		engine:          p.Engine,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		metrics:         p.Metrics,
		store:           p.Store,
		customerSvc:     p.CustomerSvc,
		subscriptionSvc: p.SubscriptionSvc,
		orderSvc:        p.OrderSvc,
		complaintSvc:    p.ComplaintSvc,
		paymentSvc:      p.PaymentSvc,
		messageSvc:      p.MessageSvc,
		activitySvc:     p.ActivitySvc,
	}
}

// Engine exposes the underlying router, for tests that drive requests
// without a listener.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/customers", s.SearchCustomers)
		api.GET("/customers/:gr", s.GetCustomerSummary)
		api.PUT("/customers/:gr/personal", s.UpdatePersonalDetails)

		api.GET("/customers/:gr/subscription", s.GetSubscription)
		api.PUT("/customers/:gr/subscription", s.UpdateSubscription)

		api.GET("/customers/:gr/orders", s.ListOrders)
		api.POST("/customers/:gr/orders", s.GenerateOrder)
		api.DELETE("/customers/:gr/orders/:order_id", s.CancelOrder)

		api.GET("/customers/:gr/payments", s.GetPayments)
		api.GET("/customers/:gr/messages", s.GetMessages)

		api.GET("/customers/:gr/complaints", s.ListComplaints)
		api.POST("/customers/:gr/complaints", s.CreateComplaint)
		api.PATCH("/customers/:gr/complaints/:complaint_id", s.UpdateComplaint)
		api.DELETE("/customers/:gr/complaints/:complaint_id", s.DeleteComplaint)

		api.GET("/customers/:gr/activity", s.ListActivity)
		api.DELETE("/customers/:gr/activity", s.ClearActivityLog)
	}

	internal := s.engine.Group("/internal")
	{
		internal.GET("/datacheck", s.Datacheck)
		internal.GET("/complaints/index", s.ComplaintIndex)
		internal.GET("/complaints/:gr/count", s.ComplaintCount)
	}
}

func (s *Server) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// observeCommand feeds the diagnostics surface after every mutation.
func (s *Server) observeCommand(command string, err error) {
	s.metrics.ObserveCommand(command, err)
	if err == nil {
		s.syncCollectionGauges()
	}
}

func (s *Server) syncCollectionGauges() {
	counts := s.store.Counts()
	s.metrics.SetCollectionSize("customers", counts.Customers)
	s.metrics.SetCollectionSize("orders", counts.Orders)
	s.metrics.SetCollectionSize("complaints", counts.Complaints)
	s.metrics.SetCollectionSize("subscriptions", counts.Subscriptions)
	s.metrics.SetCollectionSize("messages", counts.Messages)
	s.metrics.SetCollectionSize("activity", counts.Activity)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, cfg config.Config, log *zap.Logger) {
	s.RegisterRoutes()
	s.syncCollectionGauges()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(
		NewEngine,
		New,
	),
	fx.Invoke(RunHTTP),
)
