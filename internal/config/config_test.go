package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "Asia/Dhaka", cfg.Locale.DefaultTimezone)
	assert.Equal(t, "BDT", cfg.Locale.Currency)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.PaperWidth)
	assert.Equal(t, "INV", cfg.Restaurant.InvoicePrefix)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DEFAULT_TIMEZONE", "Asia/Kolkata")
	t.Setenv("PRINTER_PAPER_WIDTH", "48")
	t.Setenv("SERVICE_CHARGE_PERCENT", "7.5")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg := Load()

	assert.Equal(t, "Asia/Kolkata", cfg.Locale.DefaultTimezone)
	assert.Equal(t, 48, cfg.Printer.PaperWidth)
	assert.Equal(t, 7.5, cfg.Restaurant.ServiceChargeP)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := &DatabaseConfig{Host: "db", Port: "5432", Name: "pos", User: "pos", Password: "secret", SSLMode: "disable"}
	dsn := c.DSN()

	assert.Contains(t, dsn, "host=db")
	assert.Contains(t, dsn, "dbname=pos")
	assert.Contains(t, dsn, "TimeZone=UTC")
}
