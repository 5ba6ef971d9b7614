// Package store owns the six file-persisted entity collections and the
// account-identifier indexes derived from them. All reads take a shared
// lock; every mutating command runs its whole read-modify-write-persist
// sequence inside RunCommand under the exclusive lock, so no reader ever
// observes an in-memory change before its file write completes.
package store

import (
	"fmt"
	"sort"
	"sync"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	messagedomain "github.com/grazebox/backoffice/internal/message/domain"
	"github.com/grazebox/backoffice/internal/normalize"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	"go.uber.org/zap"
)

type collection string

const (
	collCustomers     collection = "customers"
	collOrders        collection = "orders"
	collComplaints    collection = "complaints"
	collSubscriptions collection = "subscriptions"
	collMessages      collection = "messages"
	collActivity      collection = "activity"
)

// persistOrder fixes the file-write order for multi-collection commands.
var persistOrder = []collection{
	collCustomers, collOrders, collComplaints,
	collSubscriptions, collMessages, collActivity,
}

var files = map[collection]string{
	collCustomers:     "customers.json",
	collOrders:        "orders.json",
	collComplaints:    "complaints.json",
	collSubscriptions: "subscriptions.json",
	collMessages:      "messages.json",
	collActivity:      "activity.json",
}

// Store is the single owner of all entity collections. The index maps are
// non-owning lookups from normalized account identifier to slice position;
// customers, subscriptions and message threads are never added or removed
// at runtime, so positions are stable after load.
type Store struct {
	mu  sync.RWMutex
	dir string
	log *zap.Logger

	customers     []customerdomain.Customer
	orders        []orderdomain.Order
	complaints    []complaintdomain.Complaint
	subscriptions []subscriptiondomain.Subscription
	threads       []messagedomain.Thread
	events        []activitydomain.Event

	customerIdx     map[string]int
	subscriptionIdx map[string]int
	threadIdx       map[string]int
}

// Open loads every collection from dir. A missing or malformed file, a
// record without an account identifier, or a duplicate identifier in a
// uniquely-keyed collection is a fatal startup error.
func Open(dir string, log *zap.Logger) (*Store, error) {
	s := &Store{dir: dir, log: log.Named("store")}

	var err error
	if s.customers, err = loadCollection[customerdomain.Customer](dir, files[collCustomers]); err != nil {
		return nil, err
	}
	if s.orders, err = loadCollection[orderdomain.Order](dir, files[collOrders]); err != nil {
		return nil, err
	}
	if s.complaints, err = loadCollection[complaintdomain.Complaint](dir, files[collComplaints]); err != nil {
		return nil, err
	}
	if s.subscriptions, err = loadCollection[subscriptiondomain.Subscription](dir, files[collSubscriptions]); err != nil {
		return nil, err
	}
	if s.threads, err = loadCollection[messagedomain.Thread](dir, files[collMessages]); err != nil {
		return nil, err
	}
	if s.events, err = loadCollection[activitydomain.Event](dir, files[collActivity]); err != nil {
		return nil, err
	}

	if s.customerIdx, err = buildIndex(s.customers, func(c customerdomain.Customer) string { return c.GR }, collCustomers); err != nil {
		return nil, err
	}
	if s.subscriptionIdx, err = buildIndex(s.subscriptions, func(sub subscriptiondomain.Subscription) string { return sub.GR }, collSubscriptions); err != nil {
		return nil, err
	}
	if s.threadIdx, err = buildIndex(s.threads, func(t messagedomain.Thread) string { return t.GR }, collMessages); err != nil {
		return nil, err
	}

	s.log.Info("collections loaded",
		zap.String("dir", dir),
		zap.Int("customers", len(s.customers)),
		zap.Int("orders", len(s.orders)),
		zap.Int("complaints", len(s.complaints)),
		zap.Int("subscriptions", len(s.subscriptions)),
		zap.Int("messages", len(s.threads)),
		zap.Int("activity", len(s.events)),
	)
	return s, nil
}

func buildIndex[T any](records []T, key func(T) string, coll collection) (map[string]int, error) {
	idx := make(map[string]int, len(records))
	for i, rec := range records {
		gr := normalize.ID(key(rec))
		if gr == "" {
			return nil, fmt.Errorf("%s: record %d has no account identifier", coll, i)
		}
		if prev, ok := idx[gr]; ok {
			return nil, fmt.Errorf("%s: duplicate account identifier %q (records %d and %d)", coll, gr, prev, i)
		}
		idx[gr] = i
	}
	return idx, nil
}

// CustomerByGR resolves one customer by normalized account identifier.
func (s *Store) CustomerByGR(gr string) (customerdomain.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.customerIdx[normalize.ID(gr)]
	if !ok {
		return customerdomain.Customer{}, false
	}
	return s.customers[i], true
}

// Customers returns a copy of the full customer collection, for search.
func (s *Store) Customers() []customerdomain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]customerdomain.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) SubscriptionByGR(gr string) (subscriptiondomain.Subscription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.subscriptionIdx[normalize.ID(gr)]
	if !ok {
		return subscriptiondomain.Subscription{}, false
	}
	return s.subscriptions[i], true
}

func (s *Store) ThreadByGR(gr string) (messagedomain.Thread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.threadIdx[normalize.ID(gr)]
	if !ok {
		return messagedomain.Thread{}, false
	}
	return s.threads[i], true
}

// OrdersByGR scans the order collection for one account. Orders are not
// uniquely keyed by account, so this is a linear scan by design.
func (s *Store) OrdersByGR(gr string) []orderdomain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := normalize.ID(gr)
	var out []orderdomain.Order
	for _, o := range s.orders {
		if normalize.ID(o.GR) == g {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) OrderByID(orderID string) (orderdomain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return orderdomain.Order{}, false
}

func (s *Store) ComplaintsByGR(gr string) []complaintdomain.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := normalize.ID(gr)
	var out []complaintdomain.Complaint
	for _, c := range s.complaints {
		if normalize.ID(c.GR) == g {
			out = append(out, c)
		}
	}
	return out
}

// EventsByGR returns the account's audit events sorted newest first.
func (s *Store) EventsByGR(gr string) []activitydomain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := normalize.ID(gr)
	var out []activitydomain.Event
	for _, e := range s.events {
		if normalize.ID(e.GR) == g {
			out = append(out, e)
		}
	}
	// TimeLayout sorts lexicographically in chronological order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time > out[j].Time })
	return out
}

// Counts reports the size of every collection, for diagnostics.
type Counts struct {
	Customers     int `json:"customers"`
	Orders        int `json:"orders"`
	Complaints    int `json:"complaints"`
	Subscriptions int `json:"subscriptions"`
	Messages      int `json:"messages"`
	Activity      int `json:"activity"`
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Customers:     len(s.customers),
		Orders:        len(s.orders),
		Complaints:    len(s.complaints),
		Subscriptions: len(s.subscriptions),
		Messages:      len(s.threads),
		Activity:      len(s.events),
	}
}

// OrderAccountCount reports how many distinct accounts currently have at
// least one order, i.e. how many payment views are derivable.
func (s *Store) OrderAccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, o := range s.orders {
		if g := normalize.ID(o.GR); g != "" {
			seen[g] = struct{}{}
		}
	}
	return len(seen)
}

// ComplaintCountIndex reports complaint counts per normalized account
// identifier, for diagnostics.
func (s *Store) ComplaintCountIndex() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := make(map[string]int)
	for _, c := range s.complaints {
		idx[normalize.ID(c.GR)]++
	}
	return idx
}
