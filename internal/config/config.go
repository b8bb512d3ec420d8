package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level inncontrol.yaml configuration.
type Config struct {
	Tax    TaxConfig    `yaml:"tax"`
	Dates  DatesConfig  `yaml:"dates"`
	Sheets SheetsConfig `yaml:"sheets"`
}

// TaxConfig holds the corporation-tax bands used by the format5 summary.
type TaxConfig struct {
	RateUpTo50K  float64 `yaml:"rate_up_to_50k"`
	RateAbove50K float64 `yaml:"rate_above_50k"`
}

// bandThreshold is where the upper corporation-tax band starts.
const bandThreshold = 50000

// Charge computes the corporation-tax charge on a profit figure. Losses
// attract no charge.
func (t TaxConfig) Charge(profit decimal.Decimal) decimal.Decimal {
	if profit.IsNegative() {
		return decimal.Zero
	}
	rate := t.RateAbove50K
	if profit.LessThan(decimal.NewFromInt(bandThreshold)) {
		rate = t.RateUpTo50K
	}
	return profit.Mul(decimal.NewFromFloat(rate))
}

// DatesConfig pins the workbook's preferred cell date rendering.
type DatesConfig struct {
	// CellFormat is a Go time layout tried first when parsing date cells
	// and used when writing them back.
	CellFormat string `yaml:"cell_format"`
}

// SheetsConfig controls which transaction accounts are excluded from the
// per-account sheet split (the fixed-asset accounts the FAR engine owns).
type SheetsConfig struct {
	ExcludeAccounts []string `yaml:"exclude_accounts,omitempty"`
}

// Load reads an inncontrol.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration matching the source workbook's
// conventions: flat 25% corporation tax and day-first cell dates.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Tax.RateUpTo50K == 0 {
		c.Tax.RateUpTo50K = 0.25
	}
	if c.Tax.RateAbove50K == 0 {
		c.Tax.RateAbove50K = 0.25
	}
	if c.Dates.CellFormat == "" {
		c.Dates.CellFormat = "02-01-2006"
	}
	if len(c.Sheets.ExcludeAccounts) == 0 {
		c.Sheets.ExcludeAccounts = defaultExcludeAccounts()
	}
}

// defaultExcludeAccounts lists the fixed-asset and depreciation accounts
// whose transactions feed the FAR engine instead of a split sheet.
func defaultExcludeAccounts() []string {
	return []string{
		"Freehold Property",
		"Leasehold Property",
		"Leasehold Property Depreciation",
		"Plant & Machinery",
		"Plant & Machinery Depreciation",
		"Bar & Kitchen Equipment",
		"Bar & Kitchen Equipment Depreciation",
		"Furniture & Fixtures",
		"Furniture & Fixtures Depreciation",
		"Motor Vehicles",
		"Motor Vehicles Depreciation",
		"Property Improvements",
		"Property Improvements Depreciation",
		"Refurbishment",
		"Refurbishment Depreciation",
		"Goodwill",
		"Goodwill Amortisation",
		"Historical Adjustment",
	}
}
