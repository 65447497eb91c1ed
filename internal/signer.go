package internal

import (
	"errors"
	"fmt"
	"hotelbooking/config"
	"hotelbooking/entity"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingHash       = errors.New("callback has no secure hash")
	ErrSignatureMismatch = errors.New("callback signature mismatch")
	ErrInvalidAmount     = errors.New("invalid payment amount")
)

const (
	commandPay = "pay"
	minorUnits = 100
)

// Signer builds signed payment URLs and verifies gateway callbacks.
// It holds no mutable state and is safe for concurrent use.
type Signer struct {
	merchant  config.Merchant
	encryptor *Encryptor
	encoding  EncodingMode
	location  *time.Location
}

// NewSigner fails with config.ErrConfiguration when the merchant credentials
// are missing or still placeholders.
func NewSigner(merchant config.Merchant) (*Signer, error) {
	if err := merchant.Validate(); err != nil {
		return nil, err
	}
	encoding := EncodingMode(merchant.Encoding)
	if encoding == "" {
		encoding = FormEncoding
	}
	return &Signer{
		merchant:  merchant,
		encryptor: NewEncryptor(merchant.Secret),
		encoding:  encoding,
		location:  merchant.Location(),
	}, nil
}

// Parameters assembles the signed parameter set of a payment request.
func (s *Signer) Parameters(request *entity.PaymentRequest) (*entity.PaymentParameters, error) {
	if request.Amount <= 0 || request.Amount > math.MaxInt64/minorUnits {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, request.Amount)
	}
	if request.TxnRef == "" {
		return nil, fmt.Errorf("empty transaction reference")
	}
	returnUrl := request.ReturnUrl
	if returnUrl == "" {
		returnUrl = s.merchant.ReturnUrl
	}
	if returnUrl == "" {
		return nil, fmt.Errorf("empty return url")
	}
	orderInfo := request.OrderInfo
	if orderInfo == "" {
		orderInfo = s.merchant.OrderInfo
	}
	created := request.Time
	if created.IsZero() {
		created = time.Now()
	}

	return &entity.PaymentParameters{
		Version:    s.merchant.Version,
		Command:    commandPay,
		TmnCode:    s.merchant.Terminal,
		Amount:     request.Amount * minorUnits,
		CurrCode:   s.merchant.Currency,
		TxnRef:     request.TxnRef,
		OrderInfo:  orderInfo,
		OrderType:  s.merchant.OrderType,
		Locale:     s.merchant.Locale,
		ReturnUrl:  returnUrl,
		CreateDate: created.In(s.location),
		IpAddr:     request.ClientIP,
	}, nil
}

// BuildPaymentUrl returns the gateway redirect URL for the request. The hash
// type and the secure hash are appended after the sorted query, unescaped,
// with the secure hash last.
func (s *Signer) BuildPaymentUrl(request *entity.PaymentRequest) (string, error) {
	parameters, err := s.Parameters(request)
	if err != nil {
		return "", err
	}
	query, signData := Canonicalize(parameters.Values(), s.encoding)
	secureHash := s.encryptor.SecureHash(signData)

	separator := "?"
	if strings.Contains(s.merchant.RequestUrl, "?") {
		separator = "&"
	}

	var b strings.Builder
	b.WriteString(s.merchant.RequestUrl)
	b.WriteString(separator)
	b.WriteString(query)
	b.WriteString("&" + entity.ParamSecureHashType + "=" + HashTypeSHA256)
	b.WriteString("&" + entity.ParamSecureHash + "=" + secureHash)
	return b.String(), nil
}

// VerifyCallback checks the signature of the callback parameters and reports
// the transaction outcome. The input map is not modified. A forged or
// malformed callback yields ErrMissingHash or ErrSignatureMismatch, never a panic.
func (s *Signer) VerifyCallback(params map[string]string) (*entity.CallbackResult, error) {
	data := make(map[string]string, len(params))
	for key, value := range params {
		data[key] = value
	}
	received := data[entity.ParamSecureHash]
	delete(data, entity.ParamSecureHash)
	delete(data, entity.ParamSecureHashType)

	if received == "" {
		return nil, ErrMissingHash
	}

	_, signData := Canonicalize(data, s.encoding)
	if !s.encryptor.Verify(signData, received) {
		return nil, ErrSignatureMismatch
	}

	code := data[entity.ParamResponseCode]
	if code == "" {
		code = entity.FailureCode
	}
	result := &entity.CallbackResult{
		Outcome:       entity.OutcomeFailed,
		ResponseCode:  code,
		TxnRef:        data[entity.ParamTxnRef],
		TransactionNo: data[entity.ParamTransactionNo],
		BankCode:      data[entity.ParamBankCode],
		PayDate:       data[entity.ParamPayDate],
		Parameters:    data,
	}
	if amount, err := strconv.ParseInt(data[entity.ParamAmount], 10, 64); err == nil {
		result.Amount = amount / minorUnits
	}
	if code == entity.SuccessCode {
		result.Outcome = entity.OutcomeSuccess
	}
	return result, nil
}
