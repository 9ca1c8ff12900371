// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Storage   StorageConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled             bool
	RedisURL            string
	RedisHost           string
	RedisPort           string
	RedisPassword       string
	RedisDB             int
	AnalyticsTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// AnalyticsConfig holds the tuning constants of the engine. Defaults match
// the historical behaviour; override via environment only when retuning.
type AnalyticsConfig struct {
	// Seasonality is the month-indexed demand multiplier, January first.
	Seasonality [12]float64

	// Anomaly rule thresholds.
	SalesDropRatio        float64 // recent avg below this share of historical fires
	RejectionRatePct      float64 // 30-day avg rejection percentage above this fires
	LowStockHighCount     int     // low-stock count above this upgrades to HIGH
	OverdueReceivables    float64 // pending amount older than the overdue window above this fires
	OverdueDays           int     // age in days before a pending sale counts as overdue
	MaterialCostPerUnit   float64 // average raw material cost above this fires
	SalesHealthyThreshold float64 // 30-day revenue above this earns the higher sales factor

	// Forecast behaviour.
	HistoryMonths     int // trailing window fed to the regression
	TopProductCount   int // products receiving the flat-growth projection
	ProductGrowthRate float64
}

var (
	once     sync.Once
	instance *Config
)

// Load reads configuration from the environment once and caches it.
func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "udyam")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_ANALYTICS_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "udyam-reports")
		viper.SetDefault("STORAGE_REGION", "")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("ANALYTICS_SALES_DROP_RATIO", 0.7)
		viper.SetDefault("ANALYTICS_REJECTION_RATE_PCT", 10.0)
		viper.SetDefault("ANALYTICS_LOW_STOCK_HIGH_COUNT", 5)
		viper.SetDefault("ANALYTICS_OVERDUE_RECEIVABLES", 10000.0)
		viper.SetDefault("ANALYTICS_OVERDUE_DAYS", 15)
		viper.SetDefault("ANALYTICS_MATERIAL_COST_PER_UNIT", 1000.0)
		viper.SetDefault("ANALYTICS_SALES_HEALTHY_THRESHOLD", 10000.0)
		viper.SetDefault("ANALYTICS_HISTORY_MONTHS", 6)
		viper.SetDefault("ANALYTICS_TOP_PRODUCT_COUNT", 5)
		viper.SetDefault("ANALYTICS_PRODUCT_GROWTH_RATE", 0.05)

		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:             viper.GetBool("CACHE_ENABLED"),
				RedisURL:            viper.GetString("REDIS_URL"),
				RedisHost:           viper.GetString("REDIS_HOST"),
				RedisPort:           viper.GetString("REDIS_PORT"),
				RedisPassword:       viper.GetString("REDIS_PASSWORD"),
				RedisDB:             viper.GetInt("REDIS_DB"),
				AnalyticsTTLSeconds: viper.GetInt("CACHE_ANALYTICS_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				Region:    viper.GetString("STORAGE_REGION"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Analytics: AnalyticsConfig{
				Seasonality:           DefaultSeasonality(),
				SalesDropRatio:        viper.GetFloat64("ANALYTICS_SALES_DROP_RATIO"),
				RejectionRatePct:      viper.GetFloat64("ANALYTICS_REJECTION_RATE_PCT"),
				LowStockHighCount:     viper.GetInt("ANALYTICS_LOW_STOCK_HIGH_COUNT"),
				OverdueReceivables:    viper.GetFloat64("ANALYTICS_OVERDUE_RECEIVABLES"),
				OverdueDays:           viper.GetInt("ANALYTICS_OVERDUE_DAYS"),
				MaterialCostPerUnit:   viper.GetFloat64("ANALYTICS_MATERIAL_COST_PER_UNIT"),
				SalesHealthyThreshold: viper.GetFloat64("ANALYTICS_SALES_HEALTHY_THRESHOLD"),
				HistoryMonths:         viper.GetInt("ANALYTICS_HISTORY_MONTHS"),
				TopProductCount:       viper.GetInt("ANALYTICS_TOP_PRODUCT_COUNT"),
				ProductGrowthRate:     viper.GetFloat64("ANALYTICS_PRODUCT_GROWTH_RATE"),
			},
		}
	})

	return instance
}

// DefaultSeasonality returns the month-indexed demand multipliers, January
// through December.
func DefaultSeasonality() [12]float64 {
	return [12]float64{
		0.9, 0.8, 1.0, 1.1, 1.2, 1.3,
		1.2, 1.1, 1.0, 1.1, 1.3, 1.4,
	}
}

// DefaultAnalytics returns the engine tuning block with its default values,
// for tests and tools that run without the environment singleton.
func DefaultAnalytics() AnalyticsConfig {
	return AnalyticsConfig{
		Seasonality:           DefaultSeasonality(),
		SalesDropRatio:        0.7,
		RejectionRatePct:      10.0,
		LowStockHighCount:     5,
		OverdueReceivables:    10000.0,
		OverdueDays:           15,
		MaterialCostPerUnit:   1000.0,
		SalesHealthyThreshold: 10000.0,
		HistoryMonths:         6,
		TopProductCount:       5,
		ProductGrowthRate:     0.05,
	}
}
