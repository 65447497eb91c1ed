package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validMerchant() Merchant {
	return Merchant{
		Secret:     "s3cr3t-key",
		Terminal:   "TMN01",
		RequestUrl: "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		Encoding:   "form",
		TxnRef:     "random",
	}
}

func TestMerchantValidate(t *testing.T) {
	m := validMerchant()
	assert.NoError(t, m.Validate())
}

func TestMerchantValidate_Placeholders(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *Merchant)
	}{
		{"empty secret", func(m *Merchant) { m.Secret = "" }},
		{"placeholder secret", func(m *Merchant) { m.Secret = "YOUR_SECRET_KEY" }},
		{"blank terminal", func(m *Merchant) { m.Terminal = "   " }},
		{"placeholder terminal", func(m *Merchant) { m.Terminal = "YOUR_TMN_CODE" }},
		{"no request url", func(m *Merchant) { m.RequestUrl = "" }},
		{"unknown encoding", func(m *Merchant) { m.Encoding = "base64" }},
		{"unknown generator", func(m *Merchant) { m.TxnRef = "clock" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMerchant()
			tt.modify(&m)
			err := m.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestMerchantLocation(t *testing.T) {
	m := Merchant{TimeZone: "Not/AZone"}
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, m.Location()).Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestLoad_YamlAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
is_debug: true
listen:
  port: "8080"
mongo:
  database: hotel
merchant:
  secret: from-yaml
  terminal: TMN01
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("MERCHANT_TERMINAL", "TMN-ENV")

	conf, err := load(path)
	require.NoError(t, err)
	assert.True(t, conf.IsDebug)
	assert.Equal(t, "8080", conf.Listen.Port)
	assert.Equal(t, "hotel", conf.Mongo.Database)
	assert.Equal(t, "from-yaml", conf.Merchant.Secret)
	assert.Equal(t, "TMN-ENV", conf.Merchant.Terminal)
	assert.Equal(t, "2.1.0", conf.Merchant.Version)
	assert.Equal(t, 168*time.Hour, conf.Session.TTL)
	assert.Equal(t, 30*time.Minute, conf.Booking.PendingHold)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif"}, conf.Upload.Extensions)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
