package affordability

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/metros.yaml
var sampleConfig []byte

// SampleConfig returns the bundled dataset in its YAML form.
func SampleConfig() []byte {
	return sampleConfig
}

// Config is everything a ranking run needs: loan terms, filters and the
// metros to rank.
type Config struct {
	Loan   LoanConfig   `yaml:"loan"`
	Filter FilterConfig `yaml:"filter"`
	Metros []Metro      `yaml:"metros" validate:"required,min=1,dive"`
}

// LoanConfig describes the mortgage used to price every metro.
type LoanConfig struct {
	RatePercent        float64 `yaml:"rate_percent" validate:"gte=0,lte=30"`
	DownPaymentPercent float64 `yaml:"down_payment_percent" validate:"gte=0,lt=100"`
	TermYears          int     `yaml:"term_years" validate:"gt=0,lte=50"`
	PropertyTaxPercent float64 `yaml:"property_tax_percent" validate:"gte=0,lte=10"`
	InsuranceAnnual    float64 `yaml:"insurance_annual" validate:"gte=0"`
}

type FilterConfig struct {
	MinPopulation int64 `yaml:"min_population" validate:"gte=0"`
	// TopN limits the ranking, 0 keeps every metro.
	TopN int `yaml:"top_n" validate:"gte=0"`
}

// Metro is one metropolitan area as reported by the census.
type Metro struct {
	Name                  string  `yaml:"name" validate:"required"`
	State                 string  `yaml:"state" validate:"required"`
	MedianHomePrice       float64 `yaml:"median_home_price" validate:"gt=0"`
	MedianHouseholdIncome float64 `yaml:"median_household_income" validate:"gt=0"`
	MedianRent            float64 `yaml:"median_rent" validate:"gte=0"`
	Population            int64   `yaml:"population" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig is the bundled sample dataset.
func DefaultConfig() Config {
	cfg, err := ParseConfig(sampleConfig)
	if err != nil {
		panic(fmt.Sprintf("bundled sample config is invalid: %v", err))
	}
	return cfg
}

// DefaultLoan is used for any loan field a config file leaves out.
func DefaultLoan() LoanConfig {
	return LoanConfig{
		RatePercent:        6.5,
		DownPaymentPercent: 20,
		TermYears:          30,
		PropertyTaxPercent: 1.1,
		InsuranceAnnual:    1_800,
	}
}

// ParseConfig decodes YAML over the default loan terms and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := Config{Loan: DefaultLoan()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("can't decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("can't read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
