package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Device drivers.
const (
	DriverSimulated = "simulated"
	DriverModbus    = "modbus"
)

const envPrefix = "HVAC"

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Device   DeviceConfig   `mapstructure:"device"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Series   SeriesConfig   `mapstructure:"series"`
	CSV      CSVConfig      `mapstructure:"csv"`
	DB       DBConfig       `mapstructure:"db"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Export   ExportConfig   `mapstructure:"export"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"static_dir"` // empty serves the embedded front end
}

type DeviceConfig struct {
	Driver  string        `mapstructure:"driver"` // simulated | modbus
	URL     string        `mapstructure:"url"`    // e.g. tcp://192.168.1.207:502
	Timeout time.Duration `mapstructure:"timeout"`
}

type SamplingConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type SeriesConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type CSVConfig struct {
	Path     string        `mapstructure:"path"`
	Append   bool          `mapstructure:"append"` // reuse an existing log instead of truncating it
	Interval time.Duration `mapstructure:"interval"`
}

type DBConfig struct {
	Path string `mapstructure:"path"` // empty keeps history in memory
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Topic    string `mapstructure:"topic"`
}

type ExportConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"` // empty disables archiving
	Prefix string `mapstructure:"prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("http.port", "5000")
	v.SetDefault("http.static_dir", "")
	v.SetDefault("device.driver", DriverSimulated)
	v.SetDefault("device.url", "")
	v.SetDefault("device.timeout", 2*time.Second)
	v.SetDefault("sampling.interval", time.Second)
	v.SetDefault("series.capacity", 86400) // one day at 1 Hz
	v.SetDefault("csv.path", "data_log.csv")
	v.SetDefault("csv.append", false)
	v.SetDefault("csv.interval", time.Second)
	v.SetDefault("db.path", "hvac.db")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "hvac-monitor")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic", "hvac/snapshot")
	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.prefix", "")
}

// Load reads config.yml from dir (if present), applies HVAC_* environment
// overrides on top of the defaults and validates the result.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Device.Driver {
	case DriverSimulated:
	case DriverModbus:
		if c.Device.URL == "" {
			return errors.New("device.url is required for the modbus driver")
		}
	default:
		return fmt.Errorf("unknown device.driver %q", c.Device.Driver)
	}
	if c.Sampling.Interval <= 0 {
		return errors.New("sampling.interval must be positive")
	}
	if c.CSV.Interval <= 0 {
		return errors.New("csv.interval must be positive")
	}
	if c.CSV.Path == "" {
		return errors.New("csv.path is required")
	}
	if c.Series.Capacity <= 0 {
		return errors.New("series.capacity must be positive")
	}
	if c.MQTT.Enabled && (c.MQTT.Broker == "" || c.MQTT.Topic == "") {
		return errors.New("mqtt.broker and mqtt.topic are required when mqtt is enabled")
	}
	return nil
}
