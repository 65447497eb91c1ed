// Package config provides configuration management for the hotel booking service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"strings"
	"sync"
	"time"
)

// ErrConfiguration reports a required setting that is unset or still holds a placeholder.
var ErrConfiguration = errors.New("configuration error")

// placeholders are sample values shipped in example configs; a merchant
// configured with one of them would produce requests the gateway rejects.
var placeholders = []string{
	"your_secret_key",
	"your_tmn_code",
	"changeme",
	"change_me",
	"xxx",
}

// Merchant holds the payment gateway credentials and request defaults.
type Merchant struct {
	Secret     string `yaml:"secret" env:"MERCHANT_SECRET" env-default:""`
	Terminal   string `yaml:"terminal" env:"MERCHANT_TERMINAL" env-default:""`
	RequestUrl string `yaml:"request_url" env:"MERCHANT_REQUEST_URL" env-default:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	ReturnUrl  string `yaml:"return_url" env:"MERCHANT_RETURN_URL" env-default:""`
	Version    string `yaml:"version" env:"MERCHANT_VERSION" env-default:"2.1.0"`
	Currency   string `yaml:"currency" env:"MERCHANT_CURRENCY" env-default:"VND"`
	Locale     string `yaml:"locale" env:"MERCHANT_LOCALE" env-default:"vn"`
	OrderType  string `yaml:"order_type" env:"MERCHANT_ORDER_TYPE" env-default:"other"`
	OrderInfo  string `yaml:"order_info" env:"MERCHANT_ORDER_INFO" env-default:"Thanh toan dat phong khach san"`
	TimeZone   string `yaml:"time_zone" env:"MERCHANT_TIME_ZONE" env-default:"Asia/Ho_Chi_Minh"`
	// Encoding selects query escaping: "form" writes spaces as '+', "percent" as "%20".
	Encoding string `yaml:"encoding" env:"MERCHANT_ENCODING" env-default:"form"`
	// TxnRef selects the transaction reference generator: random, sequence or time.
	TxnRef string `yaml:"txn_ref" env:"MERCHANT_TXN_REF" env-default:"random"`
	NodeId string `yaml:"node_id" env:"MERCHANT_NODE_ID" env-default:"01"`
}

// Validate checks that the merchant can sign requests.
func (m *Merchant) Validate() error {
	if isUnset(m.Secret) {
		return fmt.Errorf("%w: merchant secret is not set", ErrConfiguration)
	}
	if isUnset(m.Terminal) {
		return fmt.Errorf("%w: merchant terminal code is not set", ErrConfiguration)
	}
	if strings.TrimSpace(m.RequestUrl) == "" {
		return fmt.Errorf("%w: merchant request url is not set", ErrConfiguration)
	}
	switch m.Encoding {
	case "", "form", "percent":
	default:
		return fmt.Errorf("%w: unknown query encoding %q", ErrConfiguration, m.Encoding)
	}
	switch m.TxnRef {
	case "", "random", "sequence", "time":
	default:
		return fmt.Errorf("%w: unknown txn reference generator %q", ErrConfiguration, m.TxnRef)
	}
	return nil
}

// Location returns the gateway time zone, falling back to UTC+7.
func (m *Merchant) Location() *time.Location {
	if m.TimeZone != "" {
		if loc, err := time.LoadLocation(m.TimeZone); err == nil {
			return loc
		}
	}
	return time.FixedZone("ICT", 7*60*60)
}

func isUnset(value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return true
	}
	for _, p := range placeholders {
		if value == p {
			return true
		}
	}
	return false
}

// Config holds all configuration for the hotel booking service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug bool `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Listen  struct {
		BindIP         string   `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port           string   `yaml:"port" env:"PORT" env-default:"5000"`
		TLS            bool     `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile       string   `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile        string   `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
		TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES" env-separator:","`
	} `yaml:"listen"`
	Mongo struct {
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"qlksda"`
	} `yaml:"mongo"`
	Redis struct {
		Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
		Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"127.0.0.1:6379"`
		Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
		DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
		Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"hotel:session"`
	} `yaml:"redis"`
	Session struct {
		Cookie string        `yaml:"cookie" env:"SESSION_COOKIE" env-default:"hotel_session"`
		TTL    time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"168h"`
	} `yaml:"session"`
	Booking struct {
		// PendingHold is how long an unpaid booking keeps its dates; zero keeps them forever.
		PendingHold time.Duration `yaml:"pending_hold" env:"BOOKING_PENDING_HOLD" env-default:"30m"`
	} `yaml:"booking"`
	Upload struct {
		MaxSize    int64    `yaml:"max_size" env:"UPLOAD_MAX_SIZE" env-default:"5242880"`
		Extensions []string `yaml:"extensions" env:"UPLOAD_EXTENSIONS" env-separator:"," env-default:"png,jpg,jpeg,gif"`
	} `yaml:"upload"`
	Merchant Merchant `yaml:"merchant"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// The file is read only once; later calls return the same instance.
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = load(path)
	})
	return instance, err
}

func load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}
