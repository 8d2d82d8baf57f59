package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// GatewayOrder is the payment intent created at the gateway for an order.
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// GatewayPayment is a captured or authorized payment as reported by the gateway.
type GatewayPayment struct {
	ID     string
	Status string
	Method string
	Amount int64
}

// PaymentGateway creates gateway orders and confirms their payments.
type PaymentGateway interface {
	CreateOrder(amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	FetchPayment(paymentID string) (*GatewayPayment, error)
	KeyID() string
}

type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type paymentAPI interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Razorpay implements PaymentGateway with razorpay-go.
type Razorpay struct {
	keyID     string
	keySecret string
	orders    orderAPI
	payments  paymentAPI
}

// Ensure Razorpay implements PaymentGateway
var _ PaymentGateway = (*Razorpay)(nil)

// NewRazorpay creates a gateway client for the key pair.
func NewRazorpay(keyID, keySecret string) *Razorpay {
	client := razorpay.NewClient(keyID, keySecret)
	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		orders:    client.Order,
		payments:  client.Payment,
	}
}

func (r *Razorpay) KeyID() string {
	return r.keyID
}

// CreateOrder registers an order for amount in major units; the gateway works in paise.
func (r *Razorpay) CreateOrder(amount decimal.Decimal, currency, receipt string) (*GatewayOrder, error) {
	minor := ToMinorUnits(amount)
	body, err := r.orders.Create(map[string]interface{}{
		"amount":   minor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: missing id in response")
	}
	return &GatewayOrder{ID: id, Amount: minor, Currency: currency, Receipt: receipt}, nil
}

// VerifySignature checks the checkout signature, HMAC-SHA256 of "order_id|payment_id".
func (r *Razorpay) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return VerifySignature(r.keySecret, gatewayOrderID, paymentID, signature)
}

func (r *Razorpay) FetchPayment(paymentID string) (*GatewayPayment, error) {
	body, err := r.payments.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay fetch payment: %w", err)
	}

	payment := &GatewayPayment{ID: paymentID}
	payment.Status, _ = body["status"].(string)
	payment.Method, _ = body["method"].(string)
	if amount, ok := body["amount"].(float64); ok {
		payment.Amount = int64(amount)
	}
	return payment, nil
}

// ToMinorUnits converts a rupee amount to paise.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// VerifySignature compares signature against HMAC-SHA256(secret, orderID|paymentID) in constant time.
func VerifySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
