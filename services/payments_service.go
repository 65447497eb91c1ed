package services

import (
	"context"
	"hotelbooking/entity"
)

type Payments interface {
	PaymentUrl(ctx context.Context, amount int64, txnRef, clientIP, returnUrl string) (string, error)
	ProcessReturn(ctx context.Context, params map[string]string) (*entity.CallbackResult, error)
}
