package entity

import "time"

// PaymentRequest carries the per-request inputs of a checkout redirect.
type PaymentRequest struct {
	Amount    int64 // major currency units
	TxnRef    string
	OrderInfo string
	ClientIP  string
	ReturnUrl string
	Time      time.Time
}

// Outcome of a callback whose signature was accepted.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// SuccessCode is the gateway response code of a paid transaction; FailureCode
// stands in for a missing response code.
const (
	SuccessCode = "00"
	FailureCode = "99"
)

// ReasonAmountMismatch marks a successful gateway code whose signed amount
// does not match the booking total.
const ReasonAmountMismatch = "amount_mismatch"

// CallbackResult is a gateway callback with a verified signature.
type CallbackResult struct {
	Outcome       Outcome           `json:"outcome" bson:"outcome"`
	ResponseCode  string            `json:"response_code" bson:"response_code"`
	TxnRef        string            `json:"txn_ref" bson:"txn_ref"`
	Amount        int64             `json:"amount" bson:"amount"` // major units, 0 when unparseable
	TransactionNo string            `json:"transaction_no,omitempty" bson:"transaction_no"`
	BankCode      string            `json:"bank_code,omitempty" bson:"bank_code"`
	PayDate       string            `json:"pay_date,omitempty" bson:"pay_date"`
	Reason        string            `json:"reason,omitempty" bson:"reason,omitempty"`
	Parameters    map[string]string `json:"-" bson:"parameters"`
	TimeReceived  time.Time         `json:"time_received" bson:"time_received"`
}

func (r *CallbackResult) IsSuccess() bool {
	return r.Outcome == OutcomeSuccess
}
