package entity

import (
	"strconv"
	"time"
)

// Parameter names of the VNPay payment protocol.
const (
	ParamVersion        = "vnp_Version"
	ParamCommand        = "vnp_Command"
	ParamTmnCode        = "vnp_TmnCode"
	ParamAmount         = "vnp_Amount"
	ParamCurrCode       = "vnp_CurrCode"
	ParamTxnRef         = "vnp_TxnRef"
	ParamOrderInfo      = "vnp_OrderInfo"
	ParamOrderType      = "vnp_OrderType"
	ParamLocale         = "vnp_Locale"
	ParamReturnUrl      = "vnp_ReturnUrl"
	ParamCreateDate     = "vnp_CreateDate"
	ParamIpAddr         = "vnp_IpAddr"
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
	ParamResponseCode   = "vnp_ResponseCode"
	ParamTransactionNo  = "vnp_TransactionNo"
	ParamBankCode       = "vnp_BankCode"
	ParamPayDate        = "vnp_PayDate"
)

// CreateDateLayout is the gateway timestamp format (yyyyMMddHHmmss).
const CreateDateLayout = "20060102150405"

// PaymentParameters is the signed part of an outbound payment request.
// The secure hash and its type are not part of it: they are appended to the
// URL after the signature is computed.
type PaymentParameters struct {
	Version    string    `json:"vnp_Version"`
	Command    string    `json:"vnp_Command"`
	TmnCode    string    `json:"vnp_TmnCode"`
	Amount     int64     `json:"vnp_Amount"` // minor units (major * 100)
	CurrCode   string    `json:"vnp_CurrCode"`
	TxnRef     string    `json:"vnp_TxnRef"`
	OrderInfo  string    `json:"vnp_OrderInfo"`
	OrderType  string    `json:"vnp_OrderType"`
	Locale     string    `json:"vnp_Locale"`
	ReturnUrl  string    `json:"vnp_ReturnUrl"`
	CreateDate time.Time `json:"vnp_CreateDate"`
	IpAddr     string    `json:"vnp_IpAddr"`
}

// Values converts the parameters to the name/value mapping consumed by the encoder.
func (p *PaymentParameters) Values() map[string]string {
	return map[string]string{
		ParamVersion:    p.Version,
		ParamCommand:    p.Command,
		ParamTmnCode:    p.TmnCode,
		ParamAmount:     strconv.FormatInt(p.Amount, 10),
		ParamCurrCode:   p.CurrCode,
		ParamTxnRef:     p.TxnRef,
		ParamOrderInfo:  p.OrderInfo,
		ParamOrderType:  p.OrderType,
		ParamLocale:     p.Locale,
		ParamReturnUrl:  p.ReturnUrl,
		ParamCreateDate: p.CreateDate.Format(CreateDateLayout),
		ParamIpAddr:     p.IpAddr,
	}
}
