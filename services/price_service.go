package services

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	config "github.com/babydan/binary_backend/configs"
)

// PriceLookup returns the current DAN token price in USD, or an error when the
// oracle is unavailable. The purchase path takes it as a parameter so tests can
// inject a fixed price.
type PriceLookup func() (float64, error)

type geckoPoolResponse struct {
	Data struct {
		Attributes struct {
			BaseTokenPriceUSD string `json:"base_token_price_usd"`
		} `json:"attributes"`
	} `json:"data"`
}

var (
	priceCache     float64
	priceCacheAt   time.Time
	priceCacheLock sync.RWMutex
)

// DanPriceUSD fetches the pool price from GeckoTerminal with a short TTL cache,
// same shape as the exchange-rate cache. A zero or unparsable price is treated
// as oracle-unavailable.
func DanPriceUSD(cfg config.Settings) (float64, error) {
	priceCacheLock.RLock()
	if time.Since(priceCacheAt) < cfg.PriceCacheTTL && priceCache > 0 {
		price := priceCache
		priceCacheLock.RUnlock()
		return price, nil
	}
	priceCacheLock.RUnlock()

	log.Println("Fetching fresh BABY DAN price from GeckoTerminal...")
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(cfg.PricePoolURL)
	if err != nil {
		return 0, ErrPriceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, ErrPriceUnavailable
	}

	var data geckoPoolResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, ErrPriceUnavailable
	}

	price, err := strconv.ParseFloat(data.Data.Attributes.BaseTokenPriceUSD, 64)
	if err != nil || price <= 0 {
		return 0, ErrPriceUnavailable
	}

	priceCacheLock.Lock()
	priceCache = price
	priceCacheAt = time.Now()
	priceCacheLock.Unlock()

	return price, nil
}
