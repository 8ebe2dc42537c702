package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the session cache configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Auth holds the dashboard password gate configuration.
	Auth AuthConfig `mapstructure:",squash"`

	// Analytics holds the tunable policies of the analytics engine.
	Analytics AnalyticsConfig `mapstructure:",squash"`
}

// RedisConfig holds session storage connection details.
type RedisConfig struct {
	// URL is the Redis connection URL (redis://host:port). When empty the
	// service keeps session data in process memory instead.
	URL string `mapstructure:"REDIS_URL"`
	// SessionTTLMinutes is how long an idle browsing session keeps its datasets.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES" default:"720"`
}

// AuthConfig holds the credentials for the dashboard gate.
type AuthConfig struct {
	// PasswordHash is the bcrypt hash of the dashboard password.
	PasswordHash string `mapstructure:"DASHBOARD_PASSWORD_HASH" required:"true"`
}

// AnalyticsConfig holds policy knobs that the engine leaves to the operator.
type AnalyticsConfig struct {
	// DefaultSLADays, when > 0, is applied to shipments whose destination city
	// is missing from the SLA table. 0 leaves those shipments Undetermined.
	DefaultSLADays int `mapstructure:"ANALYTICS_DEFAULT_SLA_DAYS" default:"0"`
	// DelayFallbackDays is the backlog threshold for shipments with no SLA target.
	DelayFallbackDays int `mapstructure:"ANALYTICS_DELAY_FALLBACK_DAYS" default:"3"`
	// DelayTierMinorDays, DelayTierModerateDays and DelayTierSevereDays bound the
	// delay severity tiers; anything above severe is critical.
	DelayTierMinorDays    int `mapstructure:"ANALYTICS_DELAY_TIER_MINOR" default:"2"`
	DelayTierModerateDays int `mapstructure:"ANALYTICS_DELAY_TIER_MODERATE" default:"5"`
	DelayTierSevereDays   int `mapstructure:"ANALYTICS_DELAY_TIER_SEVERE" default:"10"`
	// MemoCapacity bounds the per-process aggregation memoizer.
	MemoCapacity int `mapstructure:"ANALYTICS_MEMO_CAPACITY" default:"64"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
