package gateway

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

const DefaultTimeout = 10 * time.Second

var hundred = decimal.NewFromInt(100)

// orderCreator is the subset of the Razorpay SDK order resource in use.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayClient creates remote orders on Razorpay.
type RazorpayClient struct {
	orders  orderCreator
	timeout time.Duration
	now     func() time.Time
}

// NewRazorpayClient fails when either credential is missing so a
// misconfigured process never starts serving.
func NewRazorpayClient(keyID, keySecret string, timeout time.Duration) (*RazorpayClient, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay key id and key secret are required")
	}
	client := razorpay.NewClient(keyID, keySecret)
	return newRazorpayClient(client.Order, timeout), nil
}

func newRazorpayClient(orders orderCreator, timeout time.Duration) *RazorpayClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RazorpayClient{orders: orders, timeout: timeout, now: time.Now}
}

// ToMinorUnits converts a major-unit amount to the gateway's integer minor
// units. Fractions of a minor unit are truncated.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

type createResult struct {
	body map[string]interface{}
	err  error
}

// CreateRemoteOrder registers amount with the gateway and returns the
// gateway order id. The call is bounded by the client timeout; on timeout
// the SDK call is abandoned and an *Error wrapping ErrTimeout is returned.
func (c *RazorpayClient) CreateRemoteOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	const op = "create order"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := map[string]interface{}{
		"amount":   ToMinorUnits(amount),
		"currency": currency,
		"receipt":  "txn_" + strconv.FormatInt(c.now().UnixMilli(), 10),
	}

	done := make(chan createResult, 1)
	go func() {
		body, err := c.orders.Create(req, nil)
		done <- createResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &Error{Op: op, Err: fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())}
	case res := <-done:
		if res.err != nil {
			return "", &Error{Op: op, Err: res.err}
		}
		id, _ := res.body["id"].(string)
		if id == "" {
			return "", &Error{Op: op, Err: errors.New("response carries no order id")}
		}
		return id, nil
	}
}
