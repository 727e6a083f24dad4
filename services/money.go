package services

import (
	config "github.com/babydan/binary_backend/configs"
)

// Three unit systems coexist: packages are priced in USD, the earnings cap is
// enforced in THB, and the ledger is denominated in DAN tokens. The defined
// types keep the conversions explicit so amounts cannot silently cross units.
type (
	AmountUSD float64
	AmountTHB float64
	AmountDAN float64
)

// USDToTHB is the only USD->THB crossing; used by the earnings cap sweep and the
// dashboard earned-percentage math.
func USDToTHB(usd AmountUSD, cfg config.Settings) AmountTHB {
	return AmountTHB(float64(usd) * cfg.CurrencyMultiplier)
}

// USDToDAN converts a package USD price into tokens at the given oracle price,
// truncated to 6 decimals as the ledger stores token amounts.
func USDToDAN(usd AmountUSD, priceUSD float64) AmountDAN {
	return AmountDAN(round6(float64(usd) / priceUSD))
}

func round6(v float64) float64 {
	return float64(int64(v*1e6+0.5)) / 1e6
}
