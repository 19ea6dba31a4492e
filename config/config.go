package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Twilio    TwilioConfig
	Notify    NotifyConfig
	Reminder  ReminderConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Port        string
	Env         string
	SalonName   string
	PhoneRegion string
}

type DBConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	TimeZone     string
	MaxIdleConns int
	MaxOpenConns int
	AutoMigrate  bool
	SQLitePath   string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	SMSFrom      string
	WhatsAppFrom string
}

type NotifyConfig struct {
	Timeout   time.Duration
	Templates map[string]string
}

type ReminderConfig struct {
	Enabled  bool
	Schedule string
	LeadDays int
}

type RateLimitConfig struct {
	Enabled    bool
	Requests   int
	Window     time.Duration
	TrustProxy bool
}

type LogConfig struct {
	Level      string
	Format     string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Configured reports whether both credentials are present.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// DSN builds the key/value connection string used by the gorm postgres driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

// MigrationURL builds the pgx5:// URL understood by golang-migrate.
func (c DBConfig) MigrationURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SALON_NAME", "Salon")
	v.SetDefault("PHONE_REGION", "BE")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "salon_booking")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_SQLITE_PATH", "salon_booking.db")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("NOTIFY_TIMEOUT", "10s")

	v.SetDefault("REMINDER_ENABLED", false)
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.SetDefault("REMINDER_LEAD_DAYS", 1)

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_REQUESTS", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
}

// LoadConfig reads the optional env file at path and overlays process
// environment variables on top of it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	notifyTimeout, err := time.ParseDuration(v.GetString("NOTIFY_TIMEOUT"))
	if err != nil || notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}

	rateWindow, err := time.ParseDuration(v.GetString("RATE_LIMIT_WINDOW"))
	if err != nil || rateWindow <= 0 {
		rateWindow = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			SalonName:   v.GetString("SALON_NAME"),
			PhoneRegion: v.GetString("PHONE_REGION"),
		},
		DB: DBConfig{
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			TimeZone:     v.GetString("DB_TIMEZONE"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
			SQLitePath:   v.GetString("DB_SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Twilio: TwilioConfig{
			AccountSID:   v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:    v.GetString("TWILIO_AUTH_TOKEN"),
			SMSFrom:      v.GetString("TWILIO_SMS_FROM"),
			WhatsAppFrom: v.GetString("TWILIO_WHATSAPP_FROM"),
		},
		Notify: NotifyConfig{
			Timeout:   notifyTimeout,
			Templates: templateOverrides(v),
		},
		Reminder: ReminderConfig{
			Enabled:  v.GetBool("REMINDER_ENABLED"),
			Schedule: v.GetString("REMINDER_SCHEDULE"),
			LeadDays: v.GetInt("REMINDER_LEAD_DAYS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:    v.GetBool("RATE_LIMIT_ENABLED"),
			Requests:   v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:     rateWindow,
			TrustProxy: v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Format:     v.GetString("LOG_FORMAT"),
			FilePath:   v.GetString("LOG_FILE_PATH"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
	}

	return config, nil
}

// templateOverrides collects NOTIFY_TEMPLATE_<ACTION> values keyed by the
// lower-case action name. Unset actions fall back to the built-in wording.
func templateOverrides(v *viper.Viper) map[string]string {
	overrides := make(map[string]string)
	for _, action := range []string{"confirmed", "moved", "cancelled", "reminder"} {
		key := "NOTIFY_TEMPLATE_" + strings.ToUpper(action)
		if tpl := v.GetString(key); tpl != "" {
			overrides[action] = tpl
		}
	}
	return overrides
}
