package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	RateLimit  RateLimitConfig
	Printer    PrinterConfig
	Locale     LocaleConfig
	Restaurant RestaurantConfig
	Metrics    MetricsConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
	// TrustedProxies may set X-Forwarded-For. Empty means none.
	TrustedProxies []string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	SQLitePath string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// PrinterConfig selects the thermal printer receipts are sent to.
type PrinterConfig struct {
	Type       string // usb, network or none
	USBPath    string
	Address    string
	PaperWidth int // characters per line: 32 for 58mm paper, 48 for 80mm
}

// LocaleConfig holds the fallbacks used when a user has no preference.
type LocaleConfig struct {
	DefaultTimezone string
	Currency        string
}

// RestaurantConfig is printed verbatim in receipt headers and footers.
type RestaurantConfig struct {
	Name           string
	Address        string
	Phone          string
	VATRegNo       string
	Footer         string
	InvoicePrefix  string
	ServiceChargeP float64 // default service charge percent for dine-in bills
}

type MetricsConfig struct {
	Enabled bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("LOG_LEVEL"),

			TrustedProxies: viper.GetStringSlice("TRUSTED_PROXIES"),
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:       viper.GetString("PRINTER_TYPE"),
			USBPath:    viper.GetString("PRINTER_USB_PATH"),
			Address:    viper.GetString("PRINTER_ADDRESS"),
			PaperWidth: viper.GetInt("PRINTER_PAPER_WIDTH"),
		},
		Locale: LocaleConfig{
			DefaultTimezone: viper.GetString("DEFAULT_TIMEZONE"),
			Currency:        viper.GetString("CURRENCY"),
		},
		Restaurant: RestaurantConfig{
			Name:           viper.GetString("RESTAURANT_NAME"),
			Address:        viper.GetString("RESTAURANT_ADDRESS"),
			Phone:          viper.GetString("RESTAURANT_PHONE"),
			VATRegNo:       viper.GetString("RESTAURANT_VAT_REG_NO"),
			Footer:         viper.GetString("RECEIPT_FOOTER"),
			InvoicePrefix:  viper.GetString("INVOICE_PREFIX"),
			ServiceChargeP: viper.GetFloat64("SERVICE_CHARGE_PERCENT"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "restopos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "restopos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_SQLITE_PATH", "restopos.db")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_PAPER_WIDTH", 32)
	viper.SetDefault("DEFAULT_TIMEZONE", "Asia/Dhaka")
	viper.SetDefault("CURRENCY", "BDT")
	viper.SetDefault("RESTAURANT_NAME", "Restaurant")
	viper.SetDefault("RECEIPT_FOOTER", "Thank you for dining with us!")
	viper.SetDefault("INVOICE_PREFIX", "INV")
	viper.SetDefault("SERVICE_CHARGE_PERCENT", 0)
	viper.SetDefault("METRICS_ENABLED", true)
}

// DSN builds the PostgreSQL connection string. Sessions run in UTC so that
// stored instants never pick up the server's zone.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=UTC"
}
