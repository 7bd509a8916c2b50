package config

import (
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/domain/financials"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int

	// AllowedOrigins enables CORS when set; "*" allows any origin.
	AllowedOrigins []string
}

type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
	OrdersTable      string
	PaymentsTable    string
}

type AuthConfig struct {
	Enabled      bool
	AccessSecret string
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string
	TestPayerEmail         string
	MockGateway            bool
}

// FinancialsConfig drives bonus policy resolution and analytics grouping.
type FinancialsConfig struct {
	DefaultPolicy      financials.BonusPolicy
	LocationPolicies   map[string]financials.BonusPolicy
	LeadSourceFallback string
	ReportLocation     *time.Location
	LaborBasis         financials.LaborBasis
	TopPartsLimit      int
}

type Config struct {
	Environment string
	ShopName    string
	HTTP        HTTPConfig
	AWS         AWSConfig
	Auth        AuthConfig
	Payments    PaymentsConfig
	Financials  FinancialsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SHOP_NAME", "Repair Desk")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("ORDERS_TABLE", "orders")
	v.SetDefault("PAYMENTS_TABLE", "payments")
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("BONUS_QUOTA_AMOUNT", "6000")
	v.SetDefault("BONUS_RATE", "0.25")
	v.SetDefault("LEAD_SOURCE_FALLBACK", financials.DefaultLeadSourceFallback)
	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("LABOR_BASIS", string(financials.LaborBasisFinalCost))
	v.SetDefault("TOP_PARTS_LIMIT", 10)

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		ShopName:    strings.TrimSpace(v.GetString("SHOP_NAME")),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),

			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		AWS: AWSConfig{
			Region:           v.GetString("AWS_REGION"),
			AccessKeyID:      v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey:  v.GetString("AWS_SECRET_ACCESS_KEY"),
			DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
			OrdersTable:      v.GetString("ORDERS_TABLE"),
			PaymentsTable:    v.GetString("PAYMENTS_TABLE"),
		},
		Auth: AuthConfig{
			Enabled:      v.GetBool("AUTH_ENABLED"),
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Payments: PaymentsConfig{
			MercadoPagoAccessToken: strings.TrimSpace(v.GetString("MERCADOPAGO_ACCESS_TOKEN")),
			TestPayerEmail:         strings.TrimSpace(v.GetString("MERCADOPAGO_TEST_PAYER_EMAIL")),
			MockGateway:            isTruthy(v.GetString("PAYMENT_GATEWAY_MOCK")) || isTruthy(v.GetString("MERCADOPAGO_MOCK")),
		},
		Financials: FinancialsConfig{
			LeadSourceFallback: strings.TrimSpace(v.GetString("LEAD_SOURCE_FALLBACK")),
			TopPartsLimit:      v.GetInt("TOP_PARTS_LIMIT"),
		},
	}

	var err error
	cfg.Financials.DefaultPolicy, err = parsePolicy(v.GetString("BONUS_QUOTA_AMOUNT"), v.GetString("BONUS_RATE"))
	if err != nil {
		return nil, fmt.Errorf("bonus policy: %w", err)
	}
	cfg.Financials.LocationPolicies, err = parsePolicyOverrides(v.GetString("BONUS_POLICY_OVERRIDES"))
	if err != nil {
		return nil, fmt.Errorf("BONUS_POLICY_OVERRIDES: %w", err)
	}
	cfg.Financials.ReportLocation, err = time.LoadLocation(v.GetString("REPORT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}
	cfg.Financials.LaborBasis, err = financials.ParseLaborBasis(v.GetString("LABOR_BASIS"))
	if err != nil {
		return nil, fmt.Errorf("LABOR_BASIS: %w", err)
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Financials.LeadSourceFallback == "" {
		cfg.Financials.LeadSourceFallback = financials.DefaultLeadSourceFallback
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTP.Port <= 0 {
		return fmt.Errorf("HTTP_PORT must be positive")
	}
	if cfg.Auth.Enabled && cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required when AUTH_ENABLED is set")
	}
	if cfg.Financials.TopPartsLimit < 0 {
		return fmt.Errorf("TOP_PARTS_LIMIT must not be negative")
	}
	return nil
}

// PolicyFor returns the bonus policy of a location, falling back to the default.
func (c FinancialsConfig) PolicyFor(locationID string) financials.BonusPolicy {
	if p, ok := c.LocationPolicies[strings.TrimSpace(locationID)]; ok {
		return p
	}
	return c.DefaultPolicy
}

// Groupings returns every analytics dimension keyed by the configured conventions.
func (c FinancialsConfig) Groupings() financials.Groupings {
	g := financials.AllGroupings()
	g.FallbackLeadSource = c.LeadSourceFallback
	g.Location = c.ReportLocation
	g.LaborBasis = c.LaborBasis
	g.TopPartsLimit = c.TopPartsLimit
	return g
}

func parsePolicy(quota, rate string) (financials.BonusPolicy, error) {
	q, err := decimal.NewFromString(strings.TrimSpace(quota))
	if err != nil {
		return financials.BonusPolicy{}, fmt.Errorf("quota %q: %w", quota, err)
	}
	r, err := decimal.NewFromString(strings.TrimSpace(rate))
	if err != nil {
		return financials.BonusPolicy{}, fmt.Errorf("rate %q: %w", rate, err)
	}
	p := financials.BonusPolicy{QuotaAmount: q, BonusRate: r}
	if err := p.Validate(); err != nil {
		return financials.BonusPolicy{}, err
	}
	return p, nil
}

// parsePolicyOverrides reads "loc-a=7000:0.3;loc-b=5000:0.2".
func parsePolicyOverrides(raw string) (map[string]financials.BonusPolicy, error) {
	out := map[string]financials.BonusPolicy{}
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		loc, terms, ok := strings.Cut(entry, "=")
		loc = strings.TrimSpace(loc)
		if !ok || loc == "" {
			return nil, fmt.Errorf("entry %q: expected location=quota:rate", entry)
		}
		quota, rate, ok := strings.Cut(terms, ":")
		if !ok {
			return nil, fmt.Errorf("entry %q: expected location=quota:rate", entry)
		}
		p, err := parsePolicy(quota, rate)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		out[loc] = p
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
