// Package config holds the sieve's tunable parameters. The quadratic
// sieve has several constants that the reference implementation baked in
// (the smoothness cutoff, the sieve half-width); the spec treats these as
// tunables rather than contracts, so they live here instead of as
// unexported constants sprinkled through internal/siqs.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config collects every sieve tunable. Zero-value Config is not usable -
// always start from Default() and override individual fields.
type Config struct {
	// SmoothnessConstant scales the log-threshold used to flag sieve
	// candidates as smooth (spec: 2/3).
	SmoothnessConstant float64 `yaml:"smoothness_constant"`
	// HalfWidth is M, the sieve interval half-width: x ranges over
	// [-M, +M] for each polynomial (spec default: 15000).
	HalfWidth int `yaml:"half_width"`
	// RelationMargin is how many relations beyond the factor-base size
	// the sieve collects before attempting linear algebra (spec: +10).
	RelationMargin int `yaml:"relation_margin"`
	// BasePrimeRangeLow/High bound the mid-range factor-base primes that
	// SIQS self-initialization draws its base-prime subset from.
	BasePrimeRangeLow  int `yaml:"base_prime_range_low"`
	BasePrimeRangeHigh int `yaml:"base_prime_range_high"`
	// MaxReinitializations bounds how many fresh base-prime subsets the
	// driver will try before giving up (spec §7).
	MaxReinitializations int `yaml:"max_reinitializations"`
	// Workers is the number of concurrent sieve goroutines. Zero means
	// "let the caller pick a default" (internal/cpuinfo.Workers()).
	Workers int `yaml:"workers"`
	// SmallPrimeLimit bounds the pre-test trial-division/Pollard-rho
	// pass peeling factors below this threshold before SIQS runs.
	SmallPrimeLimit int64 `yaml:"small_prime_limit"`
}

// Default returns the spec's tunable defaults.
func Default() Config {
	return Config{
		SmoothnessConstant:   2.0 / 3.0,
		HalfWidth:            15000,
		RelationMargin:       10,
		BasePrimeRangeLow:    1000,
		BasePrimeRangeHigh:   3000,
		MaxReinitializations: 25,
		Workers:              0,
		SmallPrimeLimit:      1 << 20,
	}
}

// Load reads a YAML file and overlays it onto Default(). A missing file is
// not an error - callers get the defaults; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
