package main

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	DB struct {
		Host         string        `mapstructure:"POSTGRES_HOST"`
		Port         string        `mapstructure:"POSTGRES_PORT"`
		User         string        `mapstructure:"POSTGRES_USER"`
		Password     string        `mapstructure:"POSTGRES_PASSWORD"`
		Name         string        `mapstructure:"POSTGRES_DB"`
		MaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
		MaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`
	} `mapstructure:",squash"`

	Mail struct {
		Host     string `mapstructure:"MAIL_HOST"`
		Port     int    `mapstructure:"MAIL_PORT"`
		User     string `mapstructure:"MAIL_USER"`
		Password string `mapstructure:"MAIL_PASSWORD"`
		Sender   string `mapstructure:"MAIL_SENDER"`
	} `mapstructure:",squash"`

	RabbitMQ struct {
		Host     string `mapstructure:"RABBITMQ_HOST"`
		Port     string `mapstructure:"RABBITMQ_PORT"`
		User     string `mapstructure:"RABBITMQ_USER"`
		Password string `mapstructure:"RABBITMQ_PASSWORD"`
	} `mapstructure:",squash"`

	// Limiter applies to every request; the form limiter additionally guards
	// login, comment, contact and newsletter submissions.
	Limiter struct {
		Enabled   bool    `mapstructure:"RATE_LIMIT_ENABLED"`
		RPS       float64 `mapstructure:"RATE_LIMIT_RPS"`
		Burst     int     `mapstructure:"RATE_LIMIT_BURST"`
		FormRPS   float64 `mapstructure:"FORM_RATE_LIMIT_RPS"`
		FormBurst int     `mapstructure:"FORM_RATE_LIMIT_BURST"`
	} `mapstructure:",squash"`

	AI struct {
		APIKey string `mapstructure:"GEMINI_API_KEY"`
		Model  string `mapstructure:"GEMINI_MODEL"`
	} `mapstructure:",squash"`

	Site SiteConfig `mapstructure:",squash"`
}

type SiteConfig struct {
	Name             string   `mapstructure:"SITE_NAME"`
	URL              string   `mapstructure:"SITE_URL"`
	Description      string   `mapstructure:"SITE_DESCRIPTION"`
	AdminEmails      []string `mapstructure:"ADMIN_EMAILS"`
	ContactRecipient string   `mapstructure:"CONTACT_RECIPIENT"`
}

var configDefaults = map[string]any{
	"PORT":                  ":4000",
	"ENVIRONMENT":           "development",
	"VERSION":               "1.0.0",
	"POSTGRES_PORT":         "5432",
	"DB_MAX_OPEN_CONNS":     25,
	"DB_MAX_IDLE_CONNS":     25,
	"DB_MAX_IDLE_TIME":      "15m",
	"MAIL_PORT":             587,
	"RABBITMQ_PORT":         "5672",
	"RATE_LIMIT_ENABLED":    true,
	"RATE_LIMIT_RPS":        10,
	"RATE_LIMIT_BURST":      20,
	"FORM_RATE_LIMIT_RPS":   0.0167,
	"FORM_RATE_LIMIT_BURST": 5,
	"SITE_NAME":             "Folio",
	"SITE_URL":              "http://localhost:4000",
}

// loadConfig reads the .env file at path. Environment variables override the
// values of the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	if err := bindEnv(v, reflect.TypeOf(Config{})); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Site.URL = strings.TrimRight(config.Site.URL, "/")

	return &config, nil
}

// bindEnv registers every mapstructure key of t with v. AutomaticEnv alone
// only covers keys viper already knows from the file or the defaults.
func bindEnv(v *viper.Viper, t reflect.Type) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")

		if opts == "squash" && f.Type.Kind() == reflect.Struct {
			if err := bindEnv(v, f.Type); err != nil {
				return err
			}
			continue
		}

		if name == "" {
			continue
		}

		if err := v.BindEnv(name); err != nil {
			return err
		}
	}

	return nil
}
