package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

// API points at the REST backend the storefront consumes.
type API struct {
	BaseURL          string        `yaml:"BASE_URL" env:"API_BASE_URL" env-required:"true"`
	Timeout          time.Duration `yaml:"TIMEOUT" env:"API_TIMEOUT" env-default:"10s"`
	MaxRetries       uint64        `yaml:"MAX_RETRIES" env:"API_MAX_RETRIES" env-default:"2"`
	RetryBaseDelay   time.Duration `yaml:"RETRY_BASE_DELAY" env:"API_RETRY_BASE_DELAY" env-default:"300ms"`
	BreakerFailures  uint32        `yaml:"BREAKER_FAILURES" env:"API_BREAKER_FAILURES" env-default:"5"`
	BreakerOpenDelay time.Duration `yaml:"BREAKER_OPEN_DELAY" env:"API_BREAKER_OPEN_DELAY" env-default:"30s"`
	HealthPath       string        `yaml:"HEALTH_PATH" env:"API_HEALTH_PATH" env-default:"/health"`
}

// HealthURL is the backend endpoint the storefront's own health check calls.
func (a *API) HealthURL() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(a.HealthPath, "/")
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Session struct {
	CookieName  string        `yaml:"COOKIE_NAME" env:"SESSION_COOKIE_NAME" env-default:"sid"`
	TTL         time.Duration `yaml:"TTL" env:"SESSION_TTL" env-default:"24h"`
	RememberTTL time.Duration `yaml:"REMEMBER_TTL" env:"SESSION_REMEMBER_TTL" env-default:"720h"`
	Secure      bool          `yaml:"SECURE" env:"SESSION_SECURE" env-default:"true"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	ProductTTL time.Duration `yaml:"product_ttl" env:"CACHE_PRODUCT_TTL" env-default:"5m"`
}

// Pricing holds the cart business rules. Monetary values are decimal strings.
type Pricing struct {
	Currency              string             `yaml:"CURRENCY" env:"PRICING_CURRENCY" env-default:"usd"`
	TaxRate               string             `yaml:"TAX_RATE" env:"PRICING_TAX_RATE" env-default:"0.08"`
	FreeShippingThreshold string             `yaml:"FREE_SHIPPING_THRESHOLD" env:"PRICING_FREE_SHIPPING_THRESHOLD" env-default:"50"`
	FlatShippingFee       string             `yaml:"FLAT_SHIPPING_FEE" env:"PRICING_FLAT_SHIPPING_FEE" env-default:"5.99"`
	MaxItemQuantity       int                `yaml:"MAX_ITEM_QUANTITY" env:"PRICING_MAX_ITEM_QUANTITY" env-default:"99"`
	PromoCodes            map[string]float64 `yaml:"PROMO_CODES" env:"PRICING_PROMO_CODES"`
}

// RateConfig throttles login attempts per email in a sliding window.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Checkout struct {
	VerifyAttempts     uint64        `yaml:"VERIFY_ATTEMPTS" env:"CHECKOUT_VERIFY_ATTEMPTS" env-default:"5"`
	VerifyInitialDelay time.Duration `yaml:"VERIFY_INITIAL_DELAY" env:"CHECKOUT_VERIFY_INITIAL_DELAY" env-default:"500ms"`
	VerifyMaxDelay     time.Duration `yaml:"VERIFY_MAX_DELAY" env:"CHECKOUT_VERIFY_MAX_DELAY" env-default:"8s"`
	MaxConcurrent      int           `yaml:"MAX_CONCURRENT" env:"CHECKOUT_MAX_CONCURRENT" env-default:"8"`
}

type Stripe struct {
	APIKey    string `yaml:"STRIPE_API_KEY" env:"STRIPE_API_KEY" env-default:""`
	ReturnURL string `yaml:"RETURN_URL" env:"STRIPE_RETURN_URL"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"pawsome-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	HTTPServer   `yaml:"http_server"`
	API          API          `yaml:"api"`
	RedisConnect RedisConnect `yaml:"redis"`
	Session      Session      `yaml:"session"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Pricing      Pricing      `yaml:"pricing"`
	Checkout     Checkout     `yaml:"checkout"`
	Stripe       Stripe       `yaml:"stripe"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	if r.Username == "" && r.Password == "" {
		return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

func (p *Pricing) validate() error {
	for name, value := range map[string]string{
		"TAX_RATE":                p.TaxRate,
		"FREE_SHIPPING_THRESHOLD": p.FreeShippingThreshold,
		"FLAT_SHIPPING_FEE":       p.FlatShippingFee,
	} {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("pricing %s is not a decimal: %w", name, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("pricing %s must not be negative", name)
		}
	}

	if p.MaxItemQuantity < 1 {
		return fmt.Errorf("pricing MAX_ITEM_QUANTITY must be at least 1")
	}

	for code, percent := range p.PromoCodes {
		if percent <= 0 || percent > 100 {
			return fmt.Errorf("promo code %q has invalid percentage %.2f", code, percent)
		}
	}

	return nil
}
