package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingConfig carries the recipe price table and the payment-method
// table. An order's payment amount is fixed at creation from the table in
// force at that moment; later edits to pricing.yml never touch existing
// orders.
type PricingConfig struct {
	// RecipePrices maps recipe id to per-box-unit price in GBP.
	RecipePrices map[string]float64 `mapstructure:"recipePrices"`
	// PaymentMethods maps the last three characters of an account
	// identifier to a display label for the account's payment method.
	PaymentMethods map[string]string `mapstructure:"paymentMethods"`
	// DefaultPaymentMethod is used when no PaymentMethods entry matches.
	DefaultPaymentMethod string `mapstructure:"defaultPaymentMethod"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		RecipePrices: map[string]float64{
			"honey-garlic-chicken": 6.99,
			"beef-tacos":           7.49,
			"salmon-teriyaki":      8.99,
			"vegetarian-curry":     5.99,
			"pasta-carbonara":      6.49,
			"thai-green-curry":     7.99,
			"mushroom-risotto":     6.99,
		},
		PaymentMethods: map[string]string{
			"001": "Visa **** 1234",
			"002": "Mastercard **** 5678",
			"003": "Amex **** 9012",
			"004": "Visa **** 4455",
			"005": "Visa **** 7788",
			"006": "Apple Pay (Amex **** 3456)",
			"007": "Mastercard **** 1122",
		},
		DefaultPaymentMethod: "Visa **** 0000",
	}
}

// PricingConfigHolder serves the current pricing tables and hot-reloads
// them when pricing.yml changes on disk.
type PricingConfigHolder struct {
	current atomic.Value // holds PricingConfig
}

func NewPricingConfigHolder() (*PricingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/grazebox")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GRAZEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingConfig()
		v.SetDefault("pricing.recipePrices", defaults.RecipePrices)
		v.SetDefault("pricing.paymentMethods", defaults.PaymentMethods)
		v.SetDefault("pricing.defaultPaymentMethod", defaults.DefaultPaymentMethod)
	}

	var cfg PricingConfig
	if err := v.UnmarshalKey("pricing", &cfg); err != nil {
		return nil, err
	}
	if err := validatePricingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingConfig
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingConfig(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPricingHolder wraps a fixed config, for tests.
func NewStaticPricingHolder(cfg PricingConfig) *PricingConfigHolder {
	holder := &PricingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PricingConfigHolder) Get() PricingConfig {
	return h.current.Load().(PricingConfig)
}

func validatePricingConfig(cfg PricingConfig) error {
	if len(cfg.RecipePrices) == 0 {
		return errors.New("pricing.recipePrices cannot be empty")
	}
	for id, price := range cfg.RecipePrices {
		if price < 0 {
			return errors.New("pricing.recipePrices has negative price for " + id)
		}
	}
	if cfg.DefaultPaymentMethod == "" {
		return errors.New("pricing.defaultPaymentMethod cannot be empty")
	}
	return nil
}
