package config

import (
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host    string `envconfig:"HOST"`
	Port    string `envconfig:"PORT"`
	Domain  string `envconfig:"DOMAIN"`
	Prefix  string `envconfig:"PREFIX"`
	Storage Storage
	Mode    Mode `envconfig:"MODE"`
	Mysql   Mysql
	Redis   Redis
	JWT     JWT
	Log     Log `mapstructure:"Log"`
	Sentry  Sentry
	OTel    OTel
	Webhook Webhook
	S3      S3
}

type Storage struct {
	Home    string `envconfig:"STORAGE_HOME" mapstructure:"home"`         // 本地文件保存目录
	BaseURL string `envconfig:"STORAGE_BASE_URL" mapstructure:"base_url"` // 本地文件访问基础URL
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"` // 令牌有效期（秒）
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing
}

type SentryTracing struct {
	DBSlowThresholdMs    int64 `envconfig:"SENTRY_DB_SLOW_MS" mapstructure:"db_slow_ms"`
	RedisSlowThresholdMs int64 `envconfig:"SENTRY_REDIS_SLOW_MS" mapstructure:"redis_slow_ms"`
	TraceHTTPCalls       bool  `envconfig:"SENTRY_TRACE_HTTP" mapstructure:"trace_http"`
}

type OTel struct {
	Enable      bool   `envconfig:"OTEL_ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"OTEL_AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"OTEL_AGENT_PORT" mapstructure:"agent_port"`
}

type Webhook struct {
	// URL 新申请通知的推送地址，留空则不推送
	URL string `envconfig:"WEBHOOK_URL" mapstructure:"url"`
}

var (
	instance *Config
	once     sync.Once
)

func Get() *Config {
	return instance
}

// Init 加载配置：先读 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		cfg := &Config{}

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		if err := viper.ReadInConfig(); err == nil {
			_ = viper.Unmarshal(cfg)
		}

		if err := envconfig.Process("", cfg); err != nil {
			panic(err)
		}

		applyDefaults(cfg)
		instance = cfg
	})
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "api"
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeDebug
	}
	if cfg.JWT.AccessExpire <= 0 {
		cfg.JWT.AccessExpire = 7 * 24 * 3600 // 默认 7 天
	}
	if cfg.Storage.Home == "" {
		cfg.Storage.Home = "./upload"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/static"
	}
	if cfg.OTel.ServiceName == "" {
		cfg.OTel.ServiceName = "campus-connect"
	}
}
