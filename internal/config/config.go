package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Plan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	PriceID  string   `json:"priceId"`
	Interval string   `json:"interval"`
	Popular  bool     `json:"popular,omitempty"`
	Features []string `json:"features"`
}

type Checkout struct {
	BaseURL        string
	PublishableKey string
	WebhookSecret  string
	Plans          []Plan
}

type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	MaxDailySwipes int
	Checkout       Checkout
}

// Load reads configuration from the environment, with .env.local / .env as
// local-development overlays, the same way the server has always started.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		godotenv.Load()
	}

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       24 * time.Hour,
		MaxDailySwipes: 10,
		Checkout: Checkout{
			BaseURL:        getenv("CHECKOUT_BASE_URL", "https://checkout.example.com/session"),
			PublishableKey: os.Getenv("CHECKOUT_PUBLISHABLE_KEY"),
			WebhookSecret:  os.Getenv("CHECKOUT_WEBHOOK_SECRET"),
			Plans: []Plan{
				{
					ID:       "premium_monthly",
					Name:     "Premium",
					Price:    "4.99",
					PriceID:  getenv("CHECKOUT_PRICE_MONTHLY", "price_monthly"),
					Interval: "month",
					Features: []string{"Unlimited swipes", "See who liked you"},
				},
				{
					ID:       "premium_yearly",
					Name:     "Premium Yearly",
					Price:    "39.99",
					PriceID:  getenv("CHECKOUT_PRICE_YEARLY", "price_yearly"),
					Interval: "year",
					Popular:  true,
					Features: []string{"Unlimited swipes", "See who liked you", "2 months free"},
				},
			},
		},
	}

	if v := os.Getenv("MAX_DAILY_SWIPES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDailySwipes = n
		}
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TokenTTL = time.Duration(n) * time.Hour
		}
	}

	return cfg, nil
}

func (c *Checkout) PlanByPriceID(priceID string) *Plan {
	for i := range c.Plans {
		if c.Plans[i].PriceID == priceID {
			return &c.Plans[i]
		}
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
