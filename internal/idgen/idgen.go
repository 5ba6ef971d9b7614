// Package idgen issues the date-stamped tokens used as order and complaint
// identifiers. Token shape is part of the on-disk contract:
// ORD-20260821-4F2A9C1B, COMP-20260821-0B77E3D2.
package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateStamp = "20060102"

// Generator issues unique identifiers for newly created records.
type Generator interface {
	OrderID(now time.Time) string
	ComplaintID(now time.Time) string
}

type generator struct{}

// New returns the production generator, backed by random UUIDs.
func New() Generator { return generator{} }

func (generator) OrderID(now time.Time) string {
	return "ORD-" + now.Format(dateStamp) + "-" + randomSuffix()
}

func (generator) ComplaintID(now time.Time) string {
	return "COMP-" + now.Format(dateStamp) + "-" + randomSuffix()
}

func randomSuffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Fixed is a Generator returning predetermined suffixes, for tests.
type Fixed struct {
	Suffix string
}

func (f Fixed) OrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format(dateStamp), f.Suffix)
}

func (f Fixed) ComplaintID(now time.Time) string {
	return fmt.Sprintf("COMP-%s-%s", now.Format(dateStamp), f.Suffix)
}
