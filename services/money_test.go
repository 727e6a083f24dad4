package services

import "testing"

func TestUSDToDANRoundsToSixDecimals(t *testing.T) {
	// 100 USD at 3 USD/DAN = 33.333333... DAN, stored with 6 decimals.
	got := USDToDAN(100, 3)
	if got != 33.333333 {
		t.Errorf("USDToDAN(100, 3) = %v, want 33.333333", got)
	}

	if got := USDToDAN(100, 0.5); got != 200 {
		t.Errorf("USDToDAN(100, 0.5) = %v, want 200", got)
	}
}

func TestUSDToTHBUsesConfiguredMultiplier(t *testing.T) {
	cfg := testSettings()
	if got := USDToTHB(10, cfg); got != 330 {
		t.Errorf("USDToTHB(10) = %v, want 330 at 33x", got)
	}

	cfg.CurrencyMultiplier = 2
	if got := USDToTHB(10, cfg); got != 20 {
		t.Errorf("USDToTHB(10) = %v, want 20 at 2x", got)
	}
}
