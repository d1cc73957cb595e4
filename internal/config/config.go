package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/efreitasn/limitbook/internal/domain"
)

// Config holds all runtime configuration for the order book tools.
type Config struct {
	LogLevel    string
	LogFile     string
	DepthLevels int
	Instruments []InstrumentConfig
}

// InstrumentConfig describes one tradable instrument in the catalogue.
type InstrumentConfig struct {
	Name          string `yaml:"name"`
	BaseSymbol    string `yaml:"base_symbol"`
	BaseDecimals  uint8  `yaml:"base_decimals"`
	QuoteSymbol   string `yaml:"quote_symbol"`
	QuoteDecimals uint8  `yaml:"quote_decimals"`
}

// instrumentsFile is the on-disk shape of the instrument catalogue.
type instrumentsFile struct {
	Instruments []InstrumentConfig `yaml:"instruments"`
}

// defaultInstruments is the built-in catalogue used when no
// INSTRUMENTS_FILE is configured.
var defaultInstruments = []InstrumentConfig{
	{Name: "BTC-USDT", BaseSymbol: "BTC", BaseDecimals: 6, QuoteSymbol: "USDT", QuoteDecimals: 2},
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	logFile := getStr("LOG_FILE", "logs/limitbook.log")

	depthLevels, err := getInt("DEPTH_LEVELS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: %w", err)
	}
	if depthLevels < 1 {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: must be at least 1")
	}

	instruments := defaultInstruments
	if path := getStr("INSTRUMENTS_FILE", ""); path != "" {
		instruments, err = loadInstruments(path)
		if err != nil {
			return nil, fmt.Errorf("invalid INSTRUMENTS_FILE: %w", err)
		}
	}

	return &Config{
		LogLevel:    logLevel,
		LogFile:     logFile,
		DepthLevels: depthLevels,
		Instruments: instruments,
	}, nil
}

// Instrument looks up an instrument by catalogue name.
func (c *Config) Instrument(name string) (domain.Instrument, error) {
	for _, ic := range c.Instruments {
		if ic.Name == name {
			return ic.Instrument(), nil
		}
	}
	return domain.Instrument{}, fmt.Errorf("unknown instrument %q", name)
}

// Instrument converts the catalogue entry into a domain.Instrument.
func (ic InstrumentConfig) Instrument() domain.Instrument {
	return domain.NewInstrument(
		domain.Asset{Symbol: ic.BaseSymbol, Decimals: ic.BaseDecimals},
		domain.Asset{Symbol: ic.QuoteSymbol, Decimals: ic.QuoteDecimals},
	)
}

func loadInstruments(path string) ([]InstrumentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f instrumentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Instruments) == 0 {
		return nil, fmt.Errorf("no instruments defined in %s", path)
	}
	for _, ic := range f.Instruments {
		if ic.Name == "" || ic.BaseSymbol == "" || ic.QuoteSymbol == "" {
			return nil, fmt.Errorf("instrument entries need name, base_symbol and quote_symbol")
		}
	}
	return f.Instruments, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
