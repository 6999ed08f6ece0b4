package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name        string
		plan        Plan
		isTrial     bool
		wantStatus  Status
		wantExpiry  *time.Time
		wantChanged bool
	}{
		{
			name:        "monthly adds one calendar month",
			plan:        PlanMonthly,
			wantStatus:  StatusActive,
			wantExpiry:  ptr(t0.AddDate(0, 1, 0)),
			wantChanged: true,
		},
		{
			name:        "yearly adds one calendar year",
			plan:        PlanYearly,
			wantStatus:  StatusActive,
			wantExpiry:  ptr(time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC)),
			wantChanged: true,
		},
		{
			name:        "trial ignores plan label",
			plan:        PlanYearly,
			isTrial:     true,
			wantStatus:  StatusTrial,
			wantExpiry:  ptr(t0.Add(7 * 24 * time.Hour)),
			wantChanged: true,
		},
		{
			name:        "trial on monthly label",
			plan:        PlanMonthly,
			isTrial:     true,
			wantStatus:  StatusTrial,
			wantExpiry:  ptr(t0.Add(7 * 24 * time.Hour)),
			wantChanged: true,
		},
		{
			name:        "freemium has no individual expiry",
			plan:        PlanFreemium,
			wantStatus:  StatusFreemium,
			wantExpiry:  nil,
			wantChanged: true,
		},
		{
			name:        "none is a no-op",
			plan:        PlanNone,
			wantStatus:  StatusInactive,
			wantExpiry:  nil,
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := Subscribe(Zero(), tt.plan, tt.isTrial, t0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.isTrial && tt.wantChanged, got.IsTrial)
			if tt.wantExpiry == nil {
				assert.Nil(t, got.ExpiryDate)
			} else {
				require.NotNil(t, got.ExpiryDate)
				assert.True(t, tt.wantExpiry.Equal(*got.ExpiryDate), "expiry = %v, want %v", got.ExpiryDate, tt.wantExpiry)
			}
		})
	}
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	cur := Zero()
	got, changed, err := Subscribe(cur, Plan("lifetime"), false, t0)

	assert.ErrorIs(t, err, ErrUnknownPlan)
	assert.False(t, changed)
	assert.True(t, got.Equal(cur))
}

func TestSubscribe_MonthOverflowFollowsCalendar(t *testing.T) {
	got, _, err := Subscribe(Zero(), PlanMonthly, false, t0)
	require.NoError(t, err)

	// Jan 31 + 1 month normalises past the end of February
	assert.Equal(t, time.March, got.ExpiryDate.Month())
	assert.Equal(t, 3, got.ExpiryDate.Day())
}

func TestCancel(t *testing.T) {
	exp := t0.AddDate(1, 0, 0)

	t.Run("active keeps expiry as grace period", func(t *testing.T) {
		cur := Record{Plan: PlanYearly, Status: StatusActive, ExpiryDate: &exp}
		got, changed := Cancel(cur)

		assert.True(t, changed)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Equal(t, PlanYearly, got.Plan)
		require.NotNil(t, got.ExpiryDate)
		assert.True(t, got.ExpiryDate.Equal(exp))
	})

	t.Run("freemium resets immediately", func(t *testing.T) {
		got, changed := Cancel(Record{Plan: PlanFreemium, Status: StatusFreemium})
		assert.True(t, changed)
		assert.True(t, got.IsZero())
	})

	t.Run("trial resets immediately", func(t *testing.T) {
		trialExp := t0.Add(TrialDuration)
		got, changed := Cancel(Record{Plan: PlanYearly, Status: StatusTrial, IsTrial: true, ExpiryDate: &trialExp})
		assert.True(t, changed)
		assert.True(t, got.IsZero())
	})

	t.Run("inactive is a no-op", func(t *testing.T) {
		got, changed := Cancel(Zero())
		assert.False(t, changed)
		assert.True(t, got.IsZero())
	})

	t.Run("cancelled stays cancelled", func(t *testing.T) {
		cur := Record{Plan: PlanMonthly, Status: StatusCancelled, ExpiryDate: &exp}
		got, changed := Cancel(cur)
		assert.False(t, changed)
		assert.True(t, got.Equal(cur))
	})
}

func TestSubscribeThenCancel(t *testing.T) {
	t.Run("freemium has no grace period", func(t *testing.T) {
		rec, _, err := Subscribe(Zero(), PlanFreemium, false, t0)
		require.NoError(t, err)

		rec, _ = Cancel(rec)
		assert.True(t, rec.IsZero())
	})

	t.Run("yearly keeps premium until the original expiry", func(t *testing.T) {
		rec, _, err := Subscribe(Zero(), PlanYearly, false, t0)
		require.NoError(t, err)
		originalExpiry := *rec.ExpiryDate

		rec, _ = Cancel(rec)
		assert.Equal(t, StatusCancelled, rec.Status)

		codeExpiry := t0.Add(24 * time.Hour)
		assert.Equal(t, TierPremium, Evaluate(rec, originalExpiry.Add(-time.Minute), &codeExpiry))
		assert.Equal(t, TierPremium, Evaluate(rec, originalExpiry, &codeExpiry))
		assert.Equal(t, TierNone, Evaluate(rec, originalExpiry.Add(time.Second), &codeExpiry))
	})
}

func TestExpireByDate(t *testing.T) {
	past := t0.Add(-time.Hour)
	future := t0.Add(time.Hour)

	tests := []struct {
		name      string
		rec       Record
		wantReset bool
	}{
		{"active past expiry", Record{Plan: PlanMonthly, Status: StatusActive, ExpiryDate: &past}, true},
		{"active expiring exactly now", Record{Plan: PlanMonthly, Status: StatusActive, ExpiryDate: ptr(t0)}, true},
		{"active future expiry", Record{Plan: PlanMonthly, Status: StatusActive, ExpiryDate: &future}, false},
		{"trial past expiry", Record{Plan: PlanYearly, Status: StatusTrial, IsTrial: true, ExpiryDate: &past}, true},
		{"freemium without expiry", Record{Plan: PlanFreemium, Status: StatusFreemium}, false},
		{"cancelled past expiry is left to Evaluate", Record{Plan: PlanYearly, Status: StatusCancelled, ExpiryDate: &past}, false},
		{"inactive", Zero(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ExpireByDate(tt.rec, t0)
			assert.Equal(t, tt.wantReset, changed)
			if tt.wantReset {
				assert.True(t, got.IsZero())
			} else {
				assert.True(t, got.Equal(tt.rec))
			}
		})
	}
}

func TestExpireByCode(t *testing.T) {
	freemium := Record{Plan: PlanFreemium, Status: StatusFreemium}

	t.Run("live code keeps freemium", func(t *testing.T) {
		got, changed := ExpireByCode(freemium, t0, ptr(t0.Add(time.Hour)))
		assert.False(t, changed)
		assert.Equal(t, StatusFreemium, got.Status)
	})

	t.Run("dead code resets freemium", func(t *testing.T) {
		got, changed := ExpireByCode(freemium, t0, ptr(t0.Add(-time.Millisecond)))
		assert.True(t, changed)
		assert.True(t, got.IsZero())
	})

	t.Run("null code expiry counts as dead", func(t *testing.T) {
		got, changed := ExpireByCode(freemium, t0, nil)
		assert.True(t, changed)
		assert.True(t, got.IsZero())
	})

	t.Run("non-freemium ignores code clock", func(t *testing.T) {
		future := t0.AddDate(0, 1, 0)
		active := Record{Plan: PlanMonthly, Status: StatusActive, ExpiryDate: &future}
		got, changed := ExpireByCode(active, t0, nil)
		assert.False(t, changed)
		assert.True(t, got.Equal(active))
	})
}

func TestRevalidate_Idempotent(t *testing.T) {
	past := t0.Add(-time.Hour)
	recs := []Record{
		{Plan: PlanMonthly, Status: StatusActive, ExpiryDate: &past},
		{Plan: PlanFreemium, Status: StatusFreemium},
		{Plan: PlanYearly, Status: StatusCancelled, ExpiryDate: &past},
		Zero(),
	}

	for _, rec := range recs {
		once, _ := Revalidate(rec, t0, nil)
		twice, changed := Revalidate(once, t0, nil)
		assert.False(t, changed)
		assert.True(t, once.Equal(twice))
	}
}

func TestRevalidate_FreemiumIgnoresOwnExpiryWhenCodeDead(t *testing.T) {
	// A freemium record with an individual expiry far in the future is still
	// revoked by the shared code clock.
	farFuture := t0.AddDate(5, 0, 0)
	rec := Record{Plan: PlanFreemium, Status: StatusFreemium, ExpiryDate: &farFuture}

	got, changed := Revalidate(rec, t0, ptr(t0.Add(-time.Second)))
	assert.True(t, changed)
	assert.True(t, got.IsZero())
}
