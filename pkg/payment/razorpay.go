package payment

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
)

// orderAPI is the part of razorpay-go's order resource we call.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type RazorpayGateway struct {
	orders orderAPI
}

// NewRazorpayGateway returns ErrNotConfigured when either credential is
// missing so the misconfiguration surfaces per request, not at boot.
func NewRazorpayGateway(keyId, keySecret string) (*RazorpayGateway, error) {
	if keyId == "" || keySecret == "" {
		return nil, ErrNotConfigured
	}
	client := razorpay.NewClient(keyId, keySecret)
	return &RazorpayGateway{orders: client.Order}, nil
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := call(ctx, func() (map[string]interface{}, error) {
		return g.orders.Create(data, nil)
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty order response", ErrRejected)
	}
	return orderFromBody(body), nil
}

func (g *RazorpayGateway) FetchOrder(ctx context.Context, orderId string) (*Order, error) {
	body, err := call(ctx, func() (map[string]interface{}, error) {
		return g.orders.Fetch(orderId, nil, nil)
	})
	if err != nil {
		if errors.Is(err, ErrRejected) && strings.Contains(strings.ToLower(err.Error()), "does not exist") {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return orderFromBody(body), nil
}

type callResult struct {
	body map[string]interface{}
	err  error
}

// call bounds a blocking SDK call by ctx. The SDK has no context support, so
// on timeout the request is abandoned rather than cancelled.
func call(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	done := make(chan callResult, 1)
	go func() {
		body, err := fn()
		done <- callResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, classify(res.err)
		}
		return res.body, nil
	}
}

func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %v", ErrRejected, err)
}

func orderFromBody(body map[string]interface{}) *Order {
	o := &Order{
		Id:       stringField(body, "id"),
		Entity:   stringField(body, "entity"),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
		Notes:    map[string]string{},
	}
	o.Amount = intField(body, "amount")
	o.CreatedAt = intField(body, "created_at")

	// Razorpay sends an empty JSON array when an order has no notes.
	if notes, ok := body["notes"].(map[string]interface{}); ok {
		for k, v := range notes {
			if s, ok := v.(string); ok {
				o.Notes[k] = s
			}
		}
	}
	return o
}

func stringField(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)
	return s
}

func intField(body map[string]interface{}, key string) int64 {
	switch v := body[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
