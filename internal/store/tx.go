package store

import (
	"slices"

	activitydomain "github.com/grazebox/backoffice/internal/activity/domain"
	complaintdomain "github.com/grazebox/backoffice/internal/complaint/domain"
	customerdomain "github.com/grazebox/backoffice/internal/customer/domain"
	"github.com/grazebox/backoffice/internal/fault"
	messagedomain "github.com/grazebox/backoffice/internal/message/domain"
	"github.com/grazebox/backoffice/internal/normalize"
	orderdomain "github.com/grazebox/backoffice/internal/order/domain"
	subscriptiondomain "github.com/grazebox/backoffice/internal/subscription/domain"
	"go.uber.org/zap"
)

// Tx is the mutable view a command works against inside RunCommand. It
// tracks which collections were touched so exactly those files are
// rewritten on commit, and it holds the snapshot used for rollback.
type Tx struct {
	s     *Store
	dirty map[collection]bool

	snapCustomers     []customerdomain.Customer
	snapOrders        []orderdomain.Order
	snapComplaints    []complaintdomain.Complaint
	snapSubscriptions []subscriptiondomain.Subscription
	snapEvents        []activitydomain.Event
}

// RunCommand executes one command atomically: fn validates, locates and
// mutates through the Tx; on success every touched collection is persisted
// with write-full-collection. Any failure, from fn or from a durable
// write, rolls the in-memory state back, so no partial mutation is ever
// observable or persisted.
func (s *Store) RunCommand(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		s:                 s,
		dirty:             make(map[collection]bool),
		snapCustomers:     slices.Clone(s.customers),
		snapOrders:        slices.Clone(s.orders),
		snapComplaints:    slices.Clone(s.complaints),
		snapSubscriptions: slices.Clone(s.subscriptions),
		snapEvents:        slices.Clone(s.events),
	}

	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}

	for _, coll := range persistOrder {
		if !tx.dirty[coll] {
			continue
		}
		if err := writeCollection(s.dir, files[coll], s.collectionRef(coll)); err != nil {
			s.log.Error("durable write failed, rolling back", zap.String("collection", string(coll)), zap.Error(err))
			tx.rollback()
			tx.repairFiles()
			return fault.Persistencef(err, "write %s collection", coll)
		}
	}
	return nil
}

func (s *Store) collectionRef(coll collection) any {
	switch coll {
	case collCustomers:
		return s.customers
	case collOrders:
		return s.orders
	case collComplaints:
		return s.complaints
	case collSubscriptions:
		return s.subscriptions
	case collMessages:
		return s.threads
	default:
		return s.events
	}
}

func (tx *Tx) rollback() {
	if len(tx.dirty) == 0 {
		return
	}
	tx.s.customers = tx.snapCustomers
	tx.s.orders = tx.snapOrders
	tx.s.complaints = tx.snapComplaints
	tx.s.subscriptions = tx.snapSubscriptions
	tx.s.events = tx.snapEvents
}

// repairFiles re-persists the rolled-back state of every touched
// collection so files written before the failing one match memory again.
// Best effort: if the disk is failing this will likely fail too.
func (tx *Tx) repairFiles() {
	for _, coll := range persistOrder {
		if !tx.dirty[coll] {
			continue
		}
		if err := writeCollection(tx.s.dir, files[coll], tx.s.collectionRef(coll)); err != nil {
			tx.s.log.Error("compensating rewrite failed; collection file may be ahead of memory",
				zap.String("collection", string(coll)), zap.Error(err))
		}
	}
}

// --- reads ---

func (tx *Tx) CustomerByGR(gr string) (customerdomain.Customer, bool) {
	i, ok := tx.s.customerIdx[normalize.ID(gr)]
	if !ok {
		return customerdomain.Customer{}, false
	}
	return tx.s.customers[i], true
}

func (tx *Tx) SubscriptionByGR(gr string) (subscriptiondomain.Subscription, bool) {
	i, ok := tx.s.subscriptionIdx[normalize.ID(gr)]
	if !ok {
		return subscriptiondomain.Subscription{}, false
	}
	return tx.s.subscriptions[i], true
}

func (tx *Tx) ThreadByGR(gr string) (messagedomain.Thread, bool) {
	i, ok := tx.s.threadIdx[normalize.ID(gr)]
	if !ok {
		return messagedomain.Thread{}, false
	}
	return tx.s.threads[i], true
}

func (tx *Tx) OrderByID(orderID string) (orderdomain.Order, bool) {
	for _, o := range tx.s.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return orderdomain.Order{}, false
}

func (tx *Tx) ComplaintByID(gr, complaintID string) (complaintdomain.Complaint, bool) {
	g := normalize.ID(gr)
	for _, c := range tx.s.complaints {
		if c.ComplaintID == complaintID && normalize.ID(c.GR) == g {
			return c, true
		}
	}
	return complaintdomain.Complaint{}, false
}

// --- writes; each keeps the matching index entry consistent in the same
// operation ---

func (tx *Tx) UpdateCustomer(c customerdomain.Customer) bool {
	i, ok := tx.s.customerIdx[normalize.ID(c.GR)]
	if !ok {
		return false
	}
	tx.s.customers[i] = c
	tx.dirty[collCustomers] = true
	return true
}

func (tx *Tx) UpdateSubscription(sub subscriptiondomain.Subscription) bool {
	i, ok := tx.s.subscriptionIdx[normalize.ID(sub.GR)]
	if !ok {
		return false
	}
	tx.s.subscriptions[i] = sub
	tx.dirty[collSubscriptions] = true
	return true
}

func (tx *Tx) AppendOrder(o orderdomain.Order) {
	tx.s.orders = append(tx.s.orders, o)
	tx.dirty[collOrders] = true
}

// RemoveOrder physically deletes an order; a cancelled order cannot later
// be inspected as "cancelled".
func (tx *Tx) RemoveOrder(orderID string) (orderdomain.Order, bool) {
	for i, o := range tx.s.orders {
		if o.OrderID == orderID {
			tx.s.orders = slices.Delete(slices.Clone(tx.s.orders), i, i+1)
			tx.dirty[collOrders] = true
			return o, true
		}
	}
	return orderdomain.Order{}, false
}

func (tx *Tx) AppendComplaint(c complaintdomain.Complaint) {
	tx.s.complaints = append(tx.s.complaints, c)
	tx.dirty[collComplaints] = true
}

func (tx *Tx) UpdateComplaint(c complaintdomain.Complaint) bool {
	g := normalize.ID(c.GR)
	for i, existing := range tx.s.complaints {
		if existing.ComplaintID == c.ComplaintID && normalize.ID(existing.GR) == g {
			tx.s.complaints[i] = c
			tx.dirty[collComplaints] = true
			return true
		}
	}
	return false
}

func (tx *Tx) RemoveComplaint(gr, complaintID string) (complaintdomain.Complaint, bool) {
	g := normalize.ID(gr)
	for i, c := range tx.s.complaints {
		if c.ComplaintID == complaintID && normalize.ID(c.GR) == g {
			tx.s.complaints = slices.Delete(slices.Clone(tx.s.complaints), i, i+1)
			tx.dirty[collComplaints] = true
			return c, true
		}
	}
	return complaintdomain.Complaint{}, false
}

func (tx *Tx) AppendEvent(e activitydomain.Event) {
	tx.s.events = append(tx.s.events, e)
	tx.dirty[collActivity] = true
}

// ClearEvents removes every event for the account and reports how many.
func (tx *Tx) ClearEvents(gr string) int {
	g := normalize.ID(gr)
	kept := tx.s.events[:0:0]
	for _, e := range tx.s.events {
		if normalize.ID(e.GR) != g {
			kept = append(kept, e)
		}
	}
	cleared := len(tx.s.events) - len(kept)
	if cleared > 0 {
		tx.s.events = kept
		tx.dirty[collActivity] = true
	}
	return cleared
}
