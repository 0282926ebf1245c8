package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"payment/internal/domain"
)

// DefaultPaymentCreatedChannel is the pub/sub channel payment.created events go to.
const DefaultPaymentCreatedChannel = "payment.created"

const paymentCreatedEvent = "payment.created"

// PaymentCreatedMessage is the payload published for each stored payment.
type PaymentCreatedMessage struct {
	Event     string `json:"event"`
	PaymentID string `json:"payment_id"`
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// PaymentPublisher publishes payment events over Redis pub/sub.
type PaymentPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewPaymentPublisher creates a new PaymentPublisher.
func NewPaymentPublisher(client redis.UniversalClient, channel string) *PaymentPublisher {
	if channel == "" {
		channel = DefaultPaymentCreatedChannel
	}
	return &PaymentPublisher{client: client, channel: channel}
}

// Channel returns the channel events are published on.
func (p *PaymentPublisher) Channel() string {
	return p.channel
}

// PublishPaymentCreated publishes a payment.created message for payment.
func (p *PaymentPublisher) PublishPaymentCreated(ctx context.Context, payment *domain.Payment) error {
	data, err := json.Marshal(newPaymentCreatedMessage(payment))
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", paymentCreatedEvent, err)
	}
	return nil
}

func newPaymentCreatedMessage(payment *domain.Payment) PaymentCreatedMessage {
	return PaymentCreatedMessage{
		Event:     paymentCreatedEvent,
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Amount:    decimal.NewFromFloat(payment.Amount).StringFixed(2),
		Currency:  payment.Currency,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt.Format(time.RFC3339Nano),
	}
}
