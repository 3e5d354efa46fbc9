package email

import (
	"context"
	"errors"
)

// Sender define la interfaz para envio de correos transaccionales.
type Sender interface {
	SendPurchaseReceipt(ctx context.Context, toEmail string, pack int, paidLeft int) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendPurchaseReceipt(_ context.Context, _ string, _ int, _ int) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
