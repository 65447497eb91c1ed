package internal

import (
	"crypto/subtle"
	"gitee.com/golang-module/dongle"
	"strings"
)

// HashTypeSHA256 identifies the secure hash algorithm to the gateway.
const HashTypeSHA256 = "SHA256"

// Encryptor computes secure hashes with the merchant secret.
type Encryptor struct {
	secret string
}

func NewEncryptor(secret string) *Encryptor {
	return &Encryptor{
		secret: secret,
	}
}

// SecureHash returns hex(SHA256(secret || signData)) in lower case.
func (e *Encryptor) SecureHash(signData string) string {
	return dongle.Encrypt.FromString(e.secret + signData).BySha256().ToHexString()
}

// Verify reports whether received is the secure hash of signData, ignoring letter case.
func (e *Encryptor) Verify(signData, received string) bool {
	expected := e.SecureHash(signData)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(received))) == 1
}
