package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	activityservice "github.com/grazebox/backoffice/internal/activity/service"
	"github.com/grazebox/backoffice/internal/clock"
	complaintservice "github.com/grazebox/backoffice/internal/complaint/service"
	"github.com/grazebox/backoffice/internal/config"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	customerservice "github.com/grazebox/backoffice/internal/customer/service"
	"github.com/grazebox/backoffice/internal/idgen"
	messageservice "github.com/grazebox/backoffice/internal/message/service"
	"github.com/grazebox/backoffice/internal/observability"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	orderservice "github.com/grazebox/backoffice/internal/order/service"
	paymentservice "github.com/grazebox/backoffice/internal/payment/service"
	"github.com/grazebox/backoffice/internal/server"
	"github.com/grazebox/backoffice/internal/store/storetest"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	subscriptionservice "github.com/grazebox/backoffice/internal/subscription/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 8, 21, 10, 30, 0, 0, time.UTC)

func newServer(t *testing.T) *server.Server {
	t.Helper()
	st, _ := storetest.Open(t, storetest.Fixture{
		Customers: []customerdomain.Customer{
			{GR: "GR-10001", FirstName: "Alice", LastName: "Hargreaves", Email: "alice@example.com", Phone: "07123 456789", Postcode: "SW1A 1AA", Address: "12 Rosemary Lane", City: "London"},
		},
		Subscriptions: []subscriptiondomain.Subscription{
			{GR: "GR-10001", Status: "Active", Frequency: "Weekly", Recipes: 3, BoxSize: 2, DeliveryDay: "Tuesday"},
		},
		Orders: []orderdomain.Order{
			{GR: "GR-10001", OrderID: "ORD-20260801-AAAA0001", OrderDate: "2026-08-01T12:00:00Z", Status: orderdomain.StatusCommitted, BoxSize: 2,
				Recipes: []orderdomain.Recipe{{ID: "beef-tacos", Name: "Beef Tacos"}, {ID: "pasta-carbonara", Name: "Pasta Carbonara"}},
				Payment: 27.96},
		},
	})

	log := zap.NewNop()
	fc := clock.NewFakeClock(testNow)
	cfg := config.Config{Operator: "admin", HTTPAddr: ":0"}
	pricing := config.NewStaticPricingHolder(config.DefaultPricingConfig())
	rec := activityservice.NewRecorder(activityservice.RecorderParams{Clock: fc, Cfg: cfg})
	ids := idgen.Fixed{Suffix: "EEEE0001"}

	s := server.New(server.Params{
		Engine:          server.NewEngine(log),
		Cfg:             cfg,
		Log:             log,
		Metrics:         observability.NewMetrics(),
		Store:           st,
		CustomerSvc:     customerservice.New(customerservice.Params{Store: st, Log: log, Recorder: rec}),
		SubscriptionSvc: subscriptionservice.New(subscriptionservice.Params{Store: st, Log: log, Recorder: rec}),
		OrderSvc:        orderservice.New(orderservice.Params{Store: st, Log: log, Clock: fc, IDs: ids, Pricing: pricing, Recorder: rec}),
		ComplaintSvc:    complaintservice.New(complaintservice.Params{Store: st, Log: log, Clock: fc, IDs: ids, Recorder: rec}),
		PaymentSvc:      paymentservice.New(paymentservice.Params{Store: st, Log: log, Pricing: pricing}),
		MessageSvc:      messageservice.New(messageservice.Params{Store: st, Log: log}),
		ActivitySvc:     activityservice.New(activityservice.Params{Store: st, Log: log}),
	})
	s.RegisterRoutes()
	return s
}

func doJSON(t *testing.T, s *server.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealthz(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestGetCustomerSummary(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/customers/GR-10001", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary customerdomain.Summary
	decodeData(t, w, &summary)
	assert.Equal(t, "Alice Hargreaves", summary.Name)
	assert.Equal(t, "Active", summary.SubscriptionStatus)
}

func TestNotFoundMapsTo404(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/customers/GR-99999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestSearchCustomers(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/customers?by=full_name&q=alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []customerdomain.Customer
	decodeData(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "GR-10001", results[0].GR)
}

func TestSearchValidationMapsTo400(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/customers?by=full_name&q=", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestUpdatePersonalDetails(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodPut, "/api/customers/GR-10001/personal", map[string]any{
		"first_name": "alice",
		"last_name":  "hargreaves",
		"email":      "alice@example.com",
		"phone":      "07123456789",
		"postcode":   "cf103nb",
		"address":    "3 saffron walk",
		"city":       "cardiff",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var cust customerdomain.Customer
	decodeData(t, w, &cust)
	assert.Equal(t, "CF10 3NB", cust.Postcode)
	assert.Equal(t, "Cardiff", cust.City)
}

func TestUpdateSubscription(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodPut, "/api/customers/GR-10001/subscription", map[string]any{
		"status": "Paused",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sub subscriptiondomain.Subscription
	decodeData(t, w, &sub)
	assert.Equal(t, "Paused", sub.Status)
	assert.Equal(t, "Weekly", sub.Frequency)
}

func TestGenerateAndCancelOrder(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/customers/GR-10001/orders", map[string]any{
		"delivery_date": "2026-08-29",
		"box_size":      2,
		"recipes": []map[string]string{
			{"id": "beef-tacos", "name": "Beef Tacos"},
			{"id": "mushroom-risotto", "name": "Mushroom Risotto"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order orderdomain.Order
	decodeData(t, w, &order)
	assert.Equal(t, orderdomain.StatusPending, order.Status)
	assert.InDelta(t, 28.96, order.Payment, 0.001)

	w = doJSON(t, s, http.MethodDelete, "/api/customers/GR-10001/orders/"+order.OrderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Cancelling a committed order conflicts.
	w = doJSON(t, s, http.MethodDelete, "/api/customers/GR-10001/orders/ORD-20260801-AAAA0001", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestComplaintLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodPost, "/api/customers/GR-10001/complaints", map[string]any{
		"order_id":            "ORD-20260801-AAAA0001",
		"recipe":              "Beef Tacos",
		"description":         "Arrived damaged",
		"compensation_type":   "refund",
		"compensation_amount": 6.99,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created map[string]any
	decodeData(t, w, &created)
	complaintID, _ := created["complaint_id"].(string)
	require.NotEmpty(t, complaintID)

	w = doJSON(t, s, http.MethodPatch, "/api/customers/GR-10001/complaints/"+complaintID, map[string]any{
		"status": "reopened",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/customers/GR-10001/complaints/"+complaintID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/customers/GR-10001/complaints/"+complaintID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentsView(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/customers/GR-10001/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view map[string]any
	decodeData(t, w, &view)
	assert.Equal(t, "Visa **** 1234", view["method"])
}

func TestActivityListAndClear(t *testing.T) {
	s := newServer(t)

	// Mutations above the store record events; drive one first.
	w := doJSON(t, s, http.MethodPut, "/api/customers/GR-10001/subscription", map[string]any{"status": "Paused"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/customers/GR-10001/activity?type="+activitydomain.CategorySubscriptionUpdate, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []activitydomain.Event
	decodeData(t, w, &events)
	require.Len(t, events, 1)
	assert.Equal(t, "admin", events[0].Actor)

	w = doJSON(t, s, http.MethodDelete, "/api/customers/GR-10001/activity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared activitydomain.ClearResult
	decodeData(t, w, &cleared)
	assert.Equal(t, 1, cleared.ClearedCount)
}

func TestDatacheck(t *testing.T) {
	s := newServer(t)
	w := doJSON(t, s, http.MethodGet, "/internal/datacheck", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["customers"])
	assert.EqualValues(t, 1, body["orders"])
	assert.EqualValues(t, 1, body["generated_payments"])
}

func TestInvalidJSONBodyMapsTo400(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodPut, "/api/customers/GR-10001/subscription", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
