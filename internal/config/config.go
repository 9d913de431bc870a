package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Trading mode values for Config.Mode.
const (
	ModeBacktest = "backtest"
	ModeLive     = "live"
)

// TradingConfig holds the immutable strategy parameters for a run.
type TradingConfig struct {
	BasketCount            int     `yaml:"basket_count"`
	ProfitThresholdPercent float64 `yaml:"profit_threshold_percent"`
	MinInvestmentPercent   float64 `yaml:"min_investment_percent"`
	MaxInvestmentPercent   float64 `yaml:"max_investment_percent"`
	FearGreedThreshold     int     `yaml:"fear_greed_threshold"`
	BuyTheDipPercent       float64 `yaml:"buy_the_dip_percent"`
	// DipWindowHours bounds the rolling window used for the "recent high"
	// in dip detection. One snapshot per hour, so 168 covers seven days.
	DipWindowHours int `yaml:"dip_window_hours"`
}

// AssetsConfig describes the single traded pair and starting balances.
type AssetsConfig struct {
	InitialFiatAmount   float64 `yaml:"initial_fiat_amount"`
	InitialCryptoAmount float64 `yaml:"initial_crypto_amount"`
	FiatSymbol          string  `yaml:"fiat_symbol"`
	CryptoSymbol        string  `yaml:"crypto_symbol"`
}

// Config holds all application configuration.
type Config struct {
	StateFile string `yaml:"state_file"`
	Mode      string `yaml:"mode"`
	DataDir   string `yaml:"data_dir"`
	Exchange  struct {
		Name    string `yaml:"name"`
		Sandbox bool   `yaml:"sandbox"`
	} `yaml:"exchange"`
	Trading  TradingConfig `yaml:"trading"`
	Assets   AssetsConfig  `yaml:"assets"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		CycleCron string `yaml:"cycle_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("TRADING_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("BACKTEST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("INITIAL_FIAT_AMOUNT"); v != "" {
		if amount, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Assets.InitialFiatAmount = amount
		}
	}

	// Defaults
	if cfg.StateFile == "" {
		cfg.StateFile = "data/bot_state.json"
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeBacktest
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "backtest-data"
	}
	if cfg.Exchange.Name == "" {
		cfg.Exchange.Name = "mock"
	}
	if cfg.Trading.BasketCount == 0 {
		cfg.Trading.BasketCount = 5
	}
	if cfg.Trading.ProfitThresholdPercent == 0 {
		cfg.Trading.ProfitThresholdPercent = 3
	}
	if cfg.Trading.MinInvestmentPercent == 0 {
		cfg.Trading.MinInvestmentPercent = 8
	}
	if cfg.Trading.MaxInvestmentPercent == 0 {
		cfg.Trading.MaxInvestmentPercent = 20
	}
	if cfg.Trading.FearGreedThreshold == 0 {
		cfg.Trading.FearGreedThreshold = 30
	}
	if cfg.Trading.BuyTheDipPercent == 0 {
		cfg.Trading.BuyTheDipPercent = 5
	}
	if cfg.Trading.DipWindowHours == 0 {
		cfg.Trading.DipWindowHours = 168
	}
	if cfg.Assets.FiatSymbol == "" {
		cfg.Assets.FiatSymbol = "USDT"
	}
	if cfg.Assets.CryptoSymbol == "" {
		cfg.Assets.CryptoSymbol = "BTC"
	}
	if cfg.Schedule.CycleCron == "" {
		cfg.Schedule.CycleCron = "0 0 * * * *"
	}

	return cfg, nil
}

// Validate checks the configuration before any tick is processed. A failure
// here is fatal at load time.
func (c *Config) Validate() error {
	if c.Mode != ModeBacktest && c.Mode != ModeLive {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeBacktest, ModeLive, c.Mode)
	}
	t := &c.Trading
	if t.BasketCount <= 0 {
		return fmt.Errorf("trading.basket_count must be positive, got %d", t.BasketCount)
	}
	if t.ProfitThresholdPercent <= 0 {
		return fmt.Errorf("trading.profit_threshold_percent must be positive, got %g", t.ProfitThresholdPercent)
	}
	if t.MinInvestmentPercent <= 0 || t.MaxInvestmentPercent <= 0 {
		return fmt.Errorf("investment percentages must be positive")
	}
	if t.MinInvestmentPercent > t.MaxInvestmentPercent {
		return fmt.Errorf("trading.min_investment_percent (%g) exceeds max_investment_percent (%g)",
			t.MinInvestmentPercent, t.MaxInvestmentPercent)
	}
	if t.MaxInvestmentPercent > 100 {
		return fmt.Errorf("trading.max_investment_percent must not exceed 100, got %g", t.MaxInvestmentPercent)
	}
	if t.FearGreedThreshold < 0 || t.FearGreedThreshold > 100 {
		return fmt.Errorf("trading.fear_greed_threshold must be within 0-100, got %d", t.FearGreedThreshold)
	}
	if t.BuyTheDipPercent <= 0 || t.BuyTheDipPercent >= 100 {
		return fmt.Errorf("trading.buy_the_dip_percent must be within (0, 100), got %g", t.BuyTheDipPercent)
	}
	if t.DipWindowHours <= 0 {
		return fmt.Errorf("trading.dip_window_hours must be positive, got %d", t.DipWindowHours)
	}
	if c.Assets.InitialFiatAmount < 0 || c.Assets.InitialCryptoAmount < 0 {
		return fmt.Errorf("initial balances must not be negative")
	}
	return nil
}
