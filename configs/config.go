package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// Settings holds every rate and limit the bonus engines use. Loaded once in main
// and passed down so tests can run the engines with alternate values.
type Settings struct {
	ReferralRate       float64       // share of the invested token amount paid to the direct sponsor
	PairingRate        float64       // share of matched PV paid as binary bonus
	CapMultiplier      float64       // earnings limit = total investment * CapMultiplier
	CurrencyMultiplier float64       // USD -> THB conversion used by the earnings cap sweep
	WithdrawLimit      float64       // max DAN withdrawable per rolling window
	WithdrawWindow     time.Duration // rolling window for the withdraw limit
	MaxTreeDepth       int           // hop ceiling for tree walks; exceeding it means a corrupt tree
	RootMemberID       uint          // default sponsor for signups without a referral code
	PricePoolURL       string        // GeckoTerminal pool endpoint for the DAN price
	PriceCacheTTL      time.Duration
}

const danPricePoolURL = "https://api.geckoterminal.com/api/v2/networks/bsc/pools/0x5cd8cd9ef2f3f1771082ecd36e0c2b00deb284de"

func DefaultSettings() Settings {
	return Settings{
		ReferralRate:       0.10,
		PairingRate:        0.08,
		CapMultiplier:      3,
		CurrencyMultiplier: 33,
		WithdrawLimit:      10000,
		WithdrawWindow:     24 * time.Hour,
		MaxTreeDepth:       10000,
		RootMemberID:       1,
		PricePoolURL:       danPricePoolURL,
		PriceCacheTTL:      time.Minute,
	}
}

// LoadSettings returns the defaults with any env overrides applied.
func LoadSettings() Settings {
	s := DefaultSettings()
	s.ReferralRate = envFloat("REFERRAL_RATE", s.ReferralRate)
	s.PairingRate = envFloat("PAIRING_RATE", s.PairingRate)
	s.CapMultiplier = envFloat("EARNINGS_CAP_MULTIPLIER", s.CapMultiplier)
	s.CurrencyMultiplier = envFloat("CURRENCY_MULTIPLIER", s.CurrencyMultiplier)
	s.WithdrawLimit = envFloat("WITHDRAW_24H_LIMIT", s.WithdrawLimit)
	if v := Config("PRICE_POOL_URL"); v != "" {
		s.PricePoolURL = v
	}
	return s
}

func envFloat(key string, fallback float64) float64 {
	v := Config(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}
