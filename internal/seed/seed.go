// Package seed writes a ready-to-serve data directory. Accounts, orders
// and the rest of the collections are created here, out of band; the
// running service only ever mutates what the seeder laid down.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	messagedomain "github.com/grazebox/backoffice/internal/message/domain"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
)

// Write lays down the six collection files under dataDir, creating the
// directory if needed. Existing files are overwritten.
func Write(dataDir string, now time.Time) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	files := map[string]any{
		"customers.json":     customers(),
		"subscriptions.json": subscriptions(),
		"orders.json":        orders(now),
		"complaints.json":    []complaintdomain.Complaint{},
		"messages.json":      messages(now),
		"activity.json":      []activitydomain.Event{},
	}

	for name, records := range files {
		if err := writeFile(filepath.Join(dataDir, name), records); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, records any) error {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func customers() []customerdomain.Customer {
	return []customerdomain.Customer{
		{
			GR:        "GR-10001",
			FirstName: "Alice",
			LastName:  "Hargreaves",
			Email:     "alice.hargreaves@example.com",
			Phone:     "07123 456789",
			Postcode:  "SW1A 1AA",
			Address:   "12 Rosemary Lane",
			City:      "London",
		},
		{
			GR:        "GR-10002",
			FirstName: "Bashir",
			LastName:  "Okonkwo",
			Email:     "b.okonkwo@example.com",
			Phone:     "07987 654321",
			Postcode:  "M1 4BT",
			Address:   "7 Tamarind Court",
			City:      "Manchester",
		},
		{
			GR:        "GR-10103",
			FirstName: "Carys",
			LastName:  "Llewellyn",
			Email:     "carys.l@example.com",
			Phone:     "07700 900123",
			Postcode:  "CF10 3NB",
			Address:   "3 Saffron Walk",
			City:      "Cardiff",
		},
	}
}

func subscriptions() []subscriptiondomain.Subscription {
	return []subscriptiondomain.Subscription{
		{GR: "GR-10001", Status: "Active", Frequency: "Weekly", Recipes: 3, BoxSize: 2, DeliveryDay: "Tuesday"},
		{GR: "GR-10002", Status: "Paused", Frequency: "Fortnightly", Recipes: 4, BoxSize: 4, DeliveryDay: "Friday"},
		{GR: "GR-10103", Status: "Active", Frequency: "Weekly", Recipes: 2, BoxSize: 1, DeliveryDay: "Monday"},
	}
}

func orders(now time.Time) []orderdomain.Order {
	past := now.AddDate(0, 0, -14).Format("2006-01-02")
	recent := now.AddDate(0, 0, -7).Format("2006-01-02")
	return []orderdomain.Order{
		{
			GR:        "GR-10001",
			OrderID:   "ORD-" + now.AddDate(0, 0, -14).Format("20060102") + "-SEED0001",
			OrderDate: past + "T12:00:00Z",
			Status:    orderdomain.StatusCommitted,
			BoxSize:   2,
			Recipes: []orderdomain.Recipe{
				{ID: "honey-garlic-chicken", Name: "Honey Garlic Chicken"},
				{ID: "beef-tacos", Name: "Beef Tacos"},
				{ID: "mushroom-risotto", Name: "Mushroom Risotto"},
			},
			Payment: 42.94,
		},
		{
			GR:        "GR-10001",
			OrderID:   "ORD-" + now.AddDate(0, 0, -7).Format("20060102") + "-SEED0002",
			OrderDate: recent + "T12:00:00Z",
			Status:    orderdomain.StatusCommitted,
			BoxSize:   2,
			Recipes: []orderdomain.Recipe{
				{ID: "salmon-teriyaki", Name: "Salmon Teriyaki"},
				{ID: "vegetarian-curry", Name: "Vegetarian Curry"},
			},
			Payment: 29.96,
		},
		{
			GR:        "GR-10002",
			OrderID:   "ORD-" + now.AddDate(0, 0, -7).Format("20060102") + "-SEED0003",
			OrderDate: recent + "T12:00:00Z",
			Status:    orderdomain.StatusCommitted,
			BoxSize:   4,
			Recipes: []orderdomain.Recipe{
				{ID: "thai-green-curry", Name: "Thai Green Curry"},
				{ID: "pasta-carbonara", Name: "Pasta Carbonara"},
			},
			Payment: 57.92,
		},
	}
}

func messages(now time.Time) []messagedomain.Thread {
	stamp := now.AddDate(0, 0, -6).Format(activitydomain.TimeLayout)
	reply := now.AddDate(0, 0, -5).Format(activitydomain.TimeLayout)
	return []messagedomain.Thread{
		{
			GR: "GR-10001",
			Log: []messagedomain.Entry{
				{Sender: "customer", Time: stamp, Body: "Hi, my last box arrived a day late. Can you check my delivery day?"},
				{Sender: "support", Time: reply, Body: "Sorry about that! Your delivery day is set to Tuesday; the courier has confirmed the next drop is on schedule."},
			},
		},
	}
}
