// Package entitlement holds the per-identity subscription record and every
// rule that moves it between states. Functions here are pure: callers pass
// the clock and the global freemium code expiry explicitly.
package entitlement

import (
	"errors"
	"time"
)

type Plan string
type Status string

const (
	PlanNone     Plan = "none"
	PlanMonthly  Plan = "monthly"
	PlanYearly   Plan = "yearly"
	PlanFreemium Plan = "freemium"

	StatusInactive  Status = "inactive"
	StatusActive    Status = "active"
	StatusFreemium  Status = "freemium"
	StatusTrial     Status = "trial"
	StatusCancelled Status = "cancelled"
)

const TrialDuration = 7 * 24 * time.Hour

var ErrUnknownPlan = errors.New("unknown plan")

// Record is the entitlement state of one identity. ExpiryDate is nil for
// records without an individual expiry (inactive, freemium).
type Record struct {
	Plan       Plan       `json:"plan"`
	Status     Status     `json:"status"`
	IsTrial    bool       `json:"isTrial"`
	ExpiryDate *time.Time `json:"expiryDate"`
}

// Zero returns the record every identity starts with.
func Zero() Record {
	return Record{
		Plan:   PlanNone,
		Status: StatusInactive,
	}
}

func (r Record) IsZero() bool {
	return r.Plan == PlanNone && r.Status == StatusInactive && !r.IsTrial && r.ExpiryDate == nil
}

// Equal compares records field by field, including the expiry instant.
func (r Record) Equal(o Record) bool {
	if r.Plan != o.Plan || r.Status != o.Status || r.IsTrial != o.IsTrial {
		return false
	}
	if r.ExpiryDate == nil || o.ExpiryDate == nil {
		return r.ExpiryDate == nil && o.ExpiryDate == nil
	}
	return r.ExpiryDate.Equal(*o.ExpiryDate)
}

func ParsePlan(s string) (Plan, error) {
	switch p := Plan(s); p {
	case PlanNone, PlanMonthly, PlanYearly, PlanFreemium:
		return p, nil
	}
	return "", ErrUnknownPlan
}

// IsPaid reports whether the plan is sold through the payment processor.
func (p Plan) IsPaid() bool {
	return p == PlanMonthly || p == PlanYearly
}
