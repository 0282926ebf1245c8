package redis

import "payment/internal/service"

// Ensure concrete types implement interfaces.
var _ service.EventPublisher = (*PaymentPublisher)(nil)
