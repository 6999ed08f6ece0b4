package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_Deterministic(t *testing.T) {
	a := Sign("secret", "order_1", "pay_1")
	b := Sign("secret", "order_1", "pay_1")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestSign_KnownVector(t *testing.T) {
	// echo -n "order_DBJOWzybf0sJbb|pay_DGAvo2uXy7QlQb" | openssl dgst -sha256 -hmac "test_secret"
	got := Sign("test_secret", "order_DBJOWzybf0sJbb", "pay_DGAvo2uXy7QlQb")
	assert.Equal(t, "01bd30181412c709a4e841a38f16fa69663cf7d18c8cbf72ab8e4f9de8548fcd", got)
	assert.NotEqual(t, Sign("test_secret", "order_DBJOWzybf0sJbb|pay_DGAvo2uXy7QlQb", ""), got)
}

func TestVerifySignature(t *testing.T) {
	secret := "key_secret"
	sig := Sign(secret, "order_abc", "pay_xyz")

	tests := []struct {
		name      string
		secret    string
		orderId   string
		paymentId string
		signature string
		want      bool
	}{
		{"valid", secret, "order_abc", "pay_xyz", sig, true},
		{"order id bit flip", secret, "order_abb", "pay_xyz", sig, false},
		{"payment id bit flip", secret, "order_abc", "pay_xyy", sig, false},
		{"wrong secret", "other", "order_abc", "pay_xyz", sig, false},
		{"uppercase signature", secret, "order_abc", "pay_xyz", strings.ToUpper(sig), false},
		{"missing secret", "", "order_abc", "pay_xyz", sig, false},
		{"missing signature", secret, "order_abc", "pay_xyz", "", false},
		{"missing order id", secret, "", "pay_xyz", sig, false},
		{"truncated signature", secret, "order_abc", "pay_xyz", sig[:63], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(tt.secret, tt.orderId, tt.paymentId, tt.signature))
		})
	}
}

func TestVerifySignature_SingleBitFlips(t *testing.T) {
	secret := "bitflip-secret"
	orderId, paymentId := "order_Q1w2E3r4", "pay_Z9x8C7v6"
	sig := Sign(secret, orderId, paymentId)

	for i := range orderId {
		b := []byte(orderId)
		b[i] ^= 0x01
		assert.False(t, VerifySignature(secret, string(b), paymentId, sig), "order byte %d", i)
	}
	for i := range paymentId {
		b := []byte(paymentId)
		b[i] ^= 0x01
		assert.False(t, VerifySignature(secret, orderId, string(b), sig), "payment byte %d", i)
	}
}

func TestNewReceipt(t *testing.T) {
	a, err := NewReceipt()
	require.NoError(t, err)
	b, err := NewReceipt()
	require.NoError(t, err)

	assert.Regexp(t, "^receipt_order_[0-9a-f]{8}$", a)
	assert.NotEqual(t, a, b)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2900), ToMinorUnits(29))
	assert.Equal(t, int64(19900), ToMinorUnits(199))
}

type fakeOrders struct {
	created map[string]interface{}
	body    map[string]interface{}
	err     error
	delay   time.Duration
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.created = data
	time.Sleep(f.delay)
	return f.body, f.err
}

func (f *fakeOrders) Fetch(_ string, _ map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	time.Sleep(f.delay)
	return f.body, f.err
}

func TestNewRazorpayGateway_RequiresCredentials(t *testing.T) {
	_, err := NewRazorpayGateway("", "secret")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewRazorpayGateway("key", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	g, err := NewRazorpayGateway("key", "secret")
	require.NoError(t, err)
	assert.NotNil(t, g)
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	fake := &fakeOrders{body: map[string]interface{}{
		"id":         "order_123",
		"entity":     "order",
		"amount":     float64(2900),
		"currency":   "INR",
		"receipt":    "receipt_order_deadbeef",
		"status":     "created",
		"created_at": float64(1700000000),
		"notes":      map[string]interface{}{"plan": "monthly"},
	}}
	g := &RazorpayGateway{orders: fake}

	order, err := g.CreateOrder(context.Background(), OrderRequest{
		Amount:   2900,
		Currency: "INR",
		Receipt:  "receipt_order_deadbeef",
		Notes:    map[string]string{NotePlan: "monthly"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2900), fake.created["amount"])
	assert.Equal(t, "order_123", order.Id)
	assert.Equal(t, int64(2900), order.Amount)
	assert.Equal(t, "monthly", order.Notes[NotePlan])
	assert.Equal(t, int64(1700000000), order.CreatedAt)
}

func TestRazorpayGateway_EmptyNotesArray(t *testing.T) {
	g := &RazorpayGateway{orders: &fakeOrders{body: map[string]interface{}{
		"id":    "order_1",
		"notes": []interface{}{},
	}}}

	order, err := g.FetchOrder(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Empty(t, order.Notes)
}

func TestRazorpayGateway_Timeout(t *testing.T) {
	g := &RazorpayGateway{orders: &fakeOrders{delay: 200 * time.Millisecond, body: map[string]interface{}{"id": "late"}}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.CreateOrder(ctx, OrderRequest{Amount: 100, Currency: "INR"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRazorpayGateway_ErrorClassification(t *testing.T) {
	g := &RazorpayGateway{orders: &fakeOrders{err: errors.New("BAD_REQUEST_ERROR: The id provided does not exist")}}

	_, err := g.FetchOrder(context.Background(), "order_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = g.CreateOrder(context.Background(), OrderRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrRejected)
}
