package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/de-tools/roi-atlas/pkg/services/evaluate"
)

// Defaults carries the tool-wide settings: evaluation fallbacks used
// when a document or flag leaves them unset, plus the server address
// and the display currency.
type Defaults struct {
	Currency     string  `mapstructure:"currency"`
	InterestRate float64 `mapstructure:"interest_rate"`
	Years        int     `mapstructure:"years"`
	Iterations   int     `mapstructure:"iterations"`
	Addr         string  `mapstructure:"addr"`
}

// Load reads settings from the given config file. An empty path looks
// for an optional roi-atlas.yaml in the working directory; a missing
// optional file yields the built-in defaults. Environment variables
// prefixed with ROI_ATLAS override file values.
func Load(path string) (*Defaults, error) {
	v := viper.New()
	v.SetDefault("currency", "USD")
	v.SetDefault("interest_rate", evaluate.DefaultInterestRate)
	v.SetDefault("years", evaluate.DefaultYears)
	v.SetDefault("iterations", evaluate.DefaultIterations)
	v.SetDefault("addr", "localhost:8080")

	v.SetEnvPrefix("ROI_ATLAS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("roi-atlas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
