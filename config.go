package pill

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML shape accepted by LoadConfig. All durations are in
// milliseconds to match the browser variants' constants.
type FileConfig struct {
	Endpoint      string `yaml:"endpoint"`
	PriceEndpoint string `yaml:"price_endpoint"`
	RulesEndpoint string `yaml:"rules_endpoint"`
	Currency      string `yaml:"currency"`

	PricePollIntervalMS int `yaml:"price_poll_interval_ms"`
	DebounceDelayMS     int `yaml:"debounce_delay_ms"`
}

// LoadConfig reads a YAML config file into a ClientConfig. Adapters are not
// configurable from a file; set them on the returned config before use.
func LoadConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := fc.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.Endpoint = fc.Endpoint
	cfg.PriceEndpoint = fc.PriceEndpoint
	cfg.RulesEndpoint = fc.RulesEndpoint
	cfg.Currency = fc.Currency
	cfg.PricePollInterval = time.Duration(fc.PricePollIntervalMS) * time.Millisecond
	cfg.DebounceDelay = time.Duration(fc.DebounceDelayMS) * time.Millisecond
	return cfg, nil
}

func (fc *FileConfig) validate() error {
	if fc.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if fc.PricePollIntervalMS < 0 {
		return fmt.Errorf("price_poll_interval_ms must not be negative")
	}
	if fc.DebounceDelayMS < 0 {
		return fmt.Errorf("debounce_delay_ms must not be negative")
	}
	return nil
}
