package entitlement

import "time"

// Subscribe returns the record produced by granting plan at now. The second
// result is false when the call is a no-op (plan none).
//
// A trial grant always yields status trial with a 7 day expiry, whatever
// plan label was requested.
func Subscribe(cur Record, plan Plan, isTrial bool, now time.Time) (Record, bool, error) {
	if _, err := ParsePlan(string(plan)); err != nil {
		return cur, false, err
	}
	if plan == PlanNone {
		return cur, false, nil
	}

	next := Record{Plan: plan, IsTrial: isTrial}

	switch {
	case isTrial:
		exp := now.Add(TrialDuration)
		next.Status = StatusTrial
		next.ExpiryDate = &exp
	case plan == PlanMonthly:
		exp := now.AddDate(0, 1, 0)
		next.Status = StatusActive
		next.ExpiryDate = &exp
	case plan == PlanYearly:
		exp := now.AddDate(1, 0, 0)
		next.Status = StatusActive
		next.ExpiryDate = &exp
	case plan == PlanFreemium:
		next.Status = StatusFreemium
	}

	return next, true, nil
}

// Cancel applies a user cancellation. Paid plans keep their expiry as a
// grace period; freemium and trial grants are revoked at once.
func Cancel(cur Record) (Record, bool) {
	switch cur.Status {
	case StatusInactive:
		return cur, false
	case StatusActive:
		next := cur
		next.Status = StatusCancelled
		return next, true
	case StatusCancelled:
		return cur, false
	default:
		return Zero(), true
	}
}

// ExpireByDate resets a record whose own expiry has been reached. Inactive
// and cancelled records are left alone; cancelled capability is decided by
// Evaluate.
func ExpireByDate(cur Record, now time.Time) (Record, bool) {
	if cur.Status == StatusInactive || cur.Status == StatusCancelled {
		return cur, false
	}
	if cur.ExpiryDate != nil && !cur.ExpiryDate.After(now) {
		return Zero(), true
	}
	return cur, false
}

// ExpireByCode resets a freemium record once the shared freemium code is
// dead. A nil codeExpiry means the code never had a validity window.
func ExpireByCode(cur Record, now time.Time, codeExpiry *time.Time) (Record, bool) {
	if cur.Status != StatusFreemium {
		return cur, false
	}
	if CodeExpired(now, codeExpiry) {
		return Zero(), true
	}
	return cur, false
}

// Revalidate runs both expiry clocks, per-identity first.
func Revalidate(cur Record, now time.Time, codeExpiry *time.Time) (Record, bool) {
	next, byDate := ExpireByDate(cur, now)
	next, byCode := ExpireByCode(next, now, codeExpiry)
	return next, byDate || byCode
}

func CodeExpired(now time.Time, codeExpiry *time.Time) bool {
	return codeExpiry == nil || now.After(*codeExpiry)
}
