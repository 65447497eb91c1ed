package internal

import (
	"context"
	"errors"
	"fmt"
	"hotelbooking/entity"
	"hotelbooking/services"
	"strconv"
	"time"
)

// Payments connects bookings with the payment gateway: it issues signed
// checkout URLs and applies verified callbacks to bookings.
type Payments struct {
	signer   *Signer
	refs     ReferenceGenerator
	database services.Database
	logger   services.LogHandler
	metrics  *Metrics
	now      func() time.Time
}

func NewPayments(signer *Signer, refs ReferenceGenerator) *Payments {
	return &Payments{
		signer: signer,
		refs:   refs,
		logger: discard,
		now:    time.Now,
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
}

func (p *Payments) SetMetrics(metrics *Metrics) {
	p.metrics = metrics
}

// PaymentUrl signs a checkout request. An empty txnRef gets a generated one;
// an empty returnUrl falls back to the configured merchant return URL.
func (p *Payments) PaymentUrl(ctx context.Context, amount int64, txnRef, clientIP, returnUrl string) (string, error) {
	now := p.now()
	if txnRef == "" {
		txnRef = p.refs.Next(now)
	}
	paymentUrl, err := p.signer.BuildPaymentUrl(&entity.PaymentRequest{
		Amount:    amount,
		TxnRef:    txnRef,
		ClientIP:  clientIP,
		ReturnUrl: returnUrl,
		Time:      now,
	})
	if err != nil {
		p.metrics.RecordPayment("error")
		return "", fmt.Errorf("build payment url: %w", err)
	}
	p.metrics.RecordPayment("signed")
	p.logger.Info(fmt.Sprintf("[%s] payment order %s; amount %d; ip %s", GetRequestID(ctx), txnRef, amount, clientIP))
	p.logger.Debug(fmt.Sprintf("payment url: %s", paymentUrl))
	return paymentUrl, nil
}

// ProcessReturn verifies a gateway callback, records the result and updates
// the booking. Signature failures are returned as ErrMissingHash or
// ErrSignatureMismatch and change nothing.
func (p *Payments) ProcessReturn(ctx context.Context, params map[string]string) (*entity.CallbackResult, error) {
	reqID := GetRequestID(ctx)
	result, err := p.signer.VerifyCallback(params)
	if err != nil {
		p.metrics.RecordCallback("rejected")
		p.logger.Warn(fmt.Sprintf("[%s] callback rejected: order %s; %v", reqID, params[entity.ParamTxnRef], err))
		return nil, err
	}
	result.TimeReceived = p.now()

	if p.database == nil {
		p.metrics.RecordCallback(string(result.Outcome))
		return result, nil
	}

	booking, err := p.database.GetBookingByTxnRef(ctx, result.TxnRef)
	if err != nil {
		p.logger.Error(fmt.Sprintf("[%s] get booking %s", reqID, result.TxnRef), err)
	}
	if booking != nil && result.IsSuccess() && !paidInFull(booking, result) {
		p.logger.Warn(fmt.Sprintf("[%s] order %s: paid amount %s differs from booking total %d", reqID, booking.TxnRef, result.Parameters[entity.ParamAmount], booking.Total))
		result.Outcome = entity.OutcomeFailed
		result.Reason = entity.ReasonAmountMismatch
	}

	if err = p.database.SavePaymentResult(ctx, result); err != nil {
		p.logger.Error(fmt.Sprintf("[%s] save payment result", reqID), err)
	}

	if booking != nil {
		p.applyToBooking(ctx, booking, result)
	} else {
		p.logger.Info(fmt.Sprintf("[%s] order %s has no booking", reqID, result.TxnRef))
	}

	p.metrics.RecordCallback(string(result.Outcome))
	p.logger.Info(fmt.Sprintf("[%s] callback: order %s; outcome %s; code %s; amount %d", reqID, result.TxnRef, result.Outcome, result.ResponseCode, result.Amount))
	return result, nil
}

// paidInFull compares the signed amount in minor units with the booking total exactly.
func paidInFull(booking *entity.Booking, result *entity.CallbackResult) bool {
	return result.Parameters[entity.ParamAmount] == strconv.FormatInt(booking.Total*minorUnits, 10)
}

func (p *Payments) applyToBooking(ctx context.Context, booking *entity.Booking, result *entity.CallbackResult) {
	if booking.Status == entity.BookingPaid {
		// repeated callback for a settled booking
		return
	}
	status := entity.BookingPaymentFailed
	if result.IsSuccess() {
		status = entity.BookingPaid
	}
	err := p.database.UpdateBookingStatus(ctx, booking.TxnRef, status, result.ResponseCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		p.logger.Error(fmt.Sprintf("update booking %s", booking.TxnRef), err)
	}
}

// secret masks an identifier for logging.
func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
