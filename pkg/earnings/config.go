package earnings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config controls strike selection and trade-suitability thresholds.
type Config struct {
	// StrangleEMWidth multiplies the effective expected move to place the
	// put/call strike targets around the underlying price.
	StrangleEMWidth decimal.Decimal
	// MinSize is the minimum bid and ask size on a selected strike.
	MinSize int
	// MaxDelta is the largest acceptable absolute delta on either leg.
	MaxDelta decimal.Decimal
	// MinStrangleCredits is the minimum combined mark of both legs.
	MinStrangleCredits decimal.Decimal
	// MaxSpreadFrac is the widest acceptable bid/ask spread as a fraction
	// of the option mark.
	MaxSpreadFrac decimal.Decimal
	// MaxDTE stops the scan at the first regular expiration beyond this
	// many days out.
	MaxDTE int
	// VolumeThreshold flags underlyings trading fewer shares per day.
	VolumeThreshold int64
}

func DefaultConfig() Config {
	return Config{
		StrangleEMWidth:    decimal.RequireFromString("1.0"),
		MinSize:            1,
		MaxDelta:           decimal.RequireFromString("0.30"),
		MinStrangleCredits: decimal.RequireFromString("1.00"),
		MaxSpreadFrac:      decimal.RequireFromString("0.25"),
		MaxDTE:             45,
		VolumeThreshold:    1000000,
	}
}

func (c Config) Validate() error {
	if c.StrangleEMWidth.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("strangle em width must be > 0")
	}
	if c.MinSize < 0 {
		return fmt.Errorf("min size must be >= 0")
	}
	if c.MaxDelta.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("max delta must be > 0")
	}
	if c.MinStrangleCredits.LessThan(decimal.Zero) {
		return fmt.Errorf("min strangle credits must be >= 0")
	}
	if c.MaxSpreadFrac.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("max spread frac must be > 0")
	}
	if c.MaxDTE <= 0 {
		return fmt.Errorf("max dte must be > 0")
	}
	if c.VolumeThreshold < 0 {
		return fmt.Errorf("volume threshold must be >= 0")
	}
	return nil
}

// MergeEnv allows easy ops without recompiling.
func (c Config) MergeEnv() Config {
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_STRANGLE_EM_WIDTH")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.StrangleEMWidth = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_MIN_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MinSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_MAX_DELTA")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.MaxDelta = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_MIN_STRANGLE_CREDITS")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThanOrEqual(decimal.Zero) {
			c.MinStrangleCredits = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_MAX_SPREAD_FRAC")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.GreaterThan(decimal.Zero) {
			c.MaxSpreadFrac = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_MAX_DTE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxDTE = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("OVERNIGHT_VOLUME_THRESHOLD")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			c.VolumeThreshold = n
		}
	}
	return c
}
