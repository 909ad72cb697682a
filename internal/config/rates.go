package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RatesConfig holds the tunable defaults used when computing and numbering
// documents.
type RatesConfig struct {
	DefaultVATRate float64           `mapstructure:"defaultVatRate"`
	Withholding    []WithholdingRate `mapstructure:"withholding"`
	Numbering      NumberingConfig   `mapstructure:"numbering"`
}

// WithholdingRate is a seeded tax code preset.
type WithholdingRate struct {
	Code string  `mapstructure:"code"`
	Name string  `mapstructure:"name"`
	Kind string  `mapstructure:"kind"`
	Rate float64 `mapstructure:"rate"`
}

// NumberingConfig holds document number templates.
type NumberingConfig struct {
	ObligationRequest   string `mapstructure:"obligationRequest"`
	DisbursementVoucher string `mapstructure:"disbursementVoucher"`
	CommunityTax        string `mapstructure:"communityTax"`
}

func DefaultRatesConfig() RatesConfig {
	return RatesConfig{
		DefaultVATRate: 12,
		Withholding: []WithholdingRate{
			{Code: "WV010", Name: "VAT withholding - goods", Kind: "withholding", Rate: 5},
			{Code: "WV020", Name: "VAT withholding - services", Kind: "withholding", Rate: 5},
			{Code: "WI158", Name: "EWT - goods", Kind: "ewt", Rate: 1},
			{Code: "WI160", Name: "EWT - services", Kind: "ewt", Rate: 2},
		},
		Numbering: NumberingConfig{
			ObligationRequest:   "OBR-{YYYY}-{MM}-{SEQ4}",
			DisbursementVoucher: "DV-{YYYY}-{MM}-{SEQ4}",
			CommunityTax:        "CTC-{YYYY}-{SEQ6}",
		},
	}
}

type RatesConfigHolder struct {
	current atomic.Value // holds RatesConfig
}

// NewStaticRatesConfigHolder wraps a fixed configuration.
func NewStaticRatesConfigHolder(cfg RatesConfig) *RatesConfigHolder {
	holder := &RatesConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewRatesConfigHolder(cfg Config, log *zap.Logger) (*RatesConfigHolder, error) {
	log = log.Named("config.rates")
	v := viper.New()

	if cfg.RatesConfigPath != "" {
		v.SetConfigFile(cfg.RatesConfigPath)
	} else {
		v.SetConfigName("rates")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/fmis")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FMIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultRatesConfig()
	v.SetDefault("rates.defaultVatRate", defaults.DefaultVATRate)
	v.SetDefault("rates.withholding", defaults.Withholding)
	v.SetDefault("rates.numbering.obligationRequest", defaults.Numbering.ObligationRequest)
	v.SetDefault("rates.numbering.disbursementVoucher", defaults.Numbering.DisbursementVoucher)
	v.SetDefault("rates.numbering.communityTax", defaults.Numbering.CommunityTax)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	var rates RatesConfig
	if err := v.UnmarshalKey("rates", &rates); err != nil {
		return nil, err
	}
	if err := validateRatesConfig(rates); err != nil {
		return nil, err
	}

	holder := NewStaticRatesConfigHolder(rates)

	if fileLoaded {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated RatesConfig
			if err := v.UnmarshalKey("rates", &updated); err != nil {
				log.Warn("reload failed", zap.Error(err))
				return
			}
			if err := validateRatesConfig(updated); err != nil {
				log.Warn("invalid config ignored", zap.Error(err))
				return
			}
			holder.current.Store(updated)
			log.Info("reloaded", zap.String("file", e.Name))
		})
	}

	return holder, nil
}

func (h *RatesConfigHolder) Get() RatesConfig {
	return h.current.Load().(RatesConfig)
}

func validateRatesConfig(cfg RatesConfig) error {
	if cfg.DefaultVATRate < 0 || cfg.DefaultVATRate > 100 {
		return errors.New("rates.defaultVatRate must be between 0 and 100")
	}
	for _, w := range cfg.Withholding {
		if strings.TrimSpace(w.Code) == "" {
			return errors.New("rates.withholding code cannot be empty")
		}
		if w.Rate < 0 || w.Rate > 100 {
			return errors.New("rates.withholding rate must be between 0 and 100")
		}
	}
	if strings.TrimSpace(cfg.Numbering.ObligationRequest) == "" ||
		strings.TrimSpace(cfg.Numbering.DisbursementVoucher) == "" ||
		strings.TrimSpace(cfg.Numbering.CommunityTax) == "" {
		return errors.New("rates.numbering templates cannot be empty")
	}
	return nil
}
