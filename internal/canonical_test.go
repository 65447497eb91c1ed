package internal

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCanonicalize_Sorted(t *testing.T) {
	query, sign := Canonicalize(map[string]string{"b": "2", "a": "1", "c": "3"}, FormEncoding)
	assert.Equal(t, "a=1&b=2&c=3", sign)
	assert.Equal(t, "a=1&b=2&c=3", query)
}

func TestCanonicalize_Empty(t *testing.T) {
	query, sign := Canonicalize(map[string]string{}, FormEncoding)
	assert.Empty(t, query)
	assert.Empty(t, sign)

	query, sign = Canonicalize(nil, PercentEncoding)
	assert.Empty(t, query)
	assert.Empty(t, sign)
}

func TestCanonicalize_ByteOrder(t *testing.T) {
	// upper case sorts before lower case; no locale folding
	_, sign := Canonicalize(map[string]string{"vnp_b": "1", "vnp_B": "2", "vnp_a": "3", "vnp_Z": "4"}, FormEncoding)
	assert.Equal(t, "vnp_B=2&vnp_Z=4&vnp_a=3&vnp_b=1", sign)
}

func TestCanonicalize_Deterministic(t *testing.T) {
	first := map[string]string{}
	second := map[string]string{}
	keys := []string{"vnp_TxnRef", "vnp_Amount", "vnp_Locale", "vnp_OrderInfo", "vnp_IpAddr"}
	for i, key := range keys {
		first[key] = key + "-value"
		second[keys[len(keys)-1-i]] = keys[len(keys)-1-i] + "-value"
	}
	for i := 0; i < 10; i++ {
		q1, s1 := Canonicalize(first, FormEncoding)
		q2, s2 := Canonicalize(second, FormEncoding)
		assert.Equal(t, q1, q2)
		assert.Equal(t, s1, s2)
	}
}

func TestCanonicalize_Escaping(t *testing.T) {
	params := map[string]string{
		"vnp_OrderInfo": "Thanh toan dat phong",
		"vnp_ReturnUrl": "http://localhost:5000/vnpay_return?x=1&y=2",
		"vnp_Note":      "a+b",
	}

	query, sign := Canonicalize(params, FormEncoding)
	assert.Equal(t, "vnp_Note=a%2Bb&vnp_OrderInfo=Thanh+toan+dat+phong&vnp_ReturnUrl=http%3A%2F%2Flocalhost%3A5000%2Fvnpay_return%3Fx%3D1%26y%3D2", query)
	assert.Equal(t, "vnp_Note=a+b&vnp_OrderInfo=Thanh toan dat phong&vnp_ReturnUrl=http://localhost:5000/vnpay_return?x=1&y=2", sign)

	query, _ = Canonicalize(params, PercentEncoding)
	assert.Equal(t, "vnp_Note=a%2Bb&vnp_OrderInfo=Thanh%20toan%20dat%20phong&vnp_ReturnUrl=http%3A%2F%2Flocalhost%3A5000%2Fvnpay_return%3Fx%3D1%26y%3D2", query)
}

func TestCanonicalize_Unicode(t *testing.T) {
	query, sign := Canonicalize(map[string]string{"vnp_OrderInfo": "Thanh toán"}, FormEncoding)
	assert.Equal(t, "vnp_OrderInfo=Thanh+to%C3%A1n", query)
	assert.Equal(t, "vnp_OrderInfo=Thanh toán", sign)
}
