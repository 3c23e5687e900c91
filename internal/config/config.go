package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the controller process configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	NATS    NATSConfig    `mapstructure:"nats"`
	Vehicle VehicleConfig `mapstructure:"vehicle"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Storage StorageConfig `mapstructure:"storage"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type VehicleConfig struct {
	CarName        string  `mapstructure:"car_name"`
	MinEnableSpeed float64 `mapstructure:"min_enable_speed"`
	MinSteerSpeed  float64 `mapstructure:"min_steer_speed"`
	Metric         bool    `mapstructure:"metric"`

	// DashcamMode keeps the controller read-only: the startup notice becomes
	// the persistent dashcam alert.
	DashcamMode bool `mapstructure:"dashcam_mode"`
}

type MonitorConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	CPUPercent    float64       `mapstructure:"cpu_percent"`
	MemoryPercent float64       `mapstructure:"memory_percent"`
	DiskPercent   float64       `mapstructure:"disk_percent"`
}

type StorageConfig struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention"`
}

// Load reads the configuration file from the given directory, applying
// defaults for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetDefault("app.name", "drive-arbiter")
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("nats.connect_timeout", 5*time.Second)
	v.SetDefault("vehicle.car_name", "unknown")
	v.SetDefault("vehicle.min_enable_speed", 0.0)
	v.SetDefault("vehicle.min_steer_speed", 0.0)
	v.SetDefault("vehicle.metric", true)
	v.SetDefault("vehicle.dashcam_mode", false)
	v.SetDefault("monitor.interval", time.Second)
	v.SetDefault("monitor.cpu_percent", 90.0)
	v.SetDefault("monitor.memory_percent", 90.0)
	v.SetDefault("monitor.disk_percent", 90.0)
	v.SetDefault("storage.path", "alert_history.db")
	v.SetDefault("storage.retention", 7*24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No file is fine; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
