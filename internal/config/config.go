package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type WalletConfig struct {
	Env string 	   		`yaml:"env" env:"WALLET_ENV" env-default:"local"`
	HTTPServer 	   		`yaml:"http_server"`
	GRPCServer 	   		`yaml:"grpc_server"`
	WalletDB 	   		`yaml:"wallet_db"`
	LogConfig 	   		`yaml:"log_config"`
	KafkaService   		`yaml:"kafka-service"`
	RedisService   		`yaml:"redis-service"`
	Gateway 	   		`yaml:"gateway"`
	Reconcile 	   		`yaml:"reconcile"`
	Reference 	   		`yaml:"reference"`
	Deposit 	   		`yaml:"deposit"`
	Auth 		   		`yaml:"auth"`
	Banks []BankConfig  `yaml:"banks"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"9090"`
}

type WalletDB struct {
	Dsn 			string `yaml:"dsn" env:"WALLET_DB_DSN" env-required:"true"`
	MigrationsPath 	string `yaml:"migrations_path" env:"WALLET_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel 	string 	`yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat 	string 	`yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

type KafkaService struct {
	Enabled bool   `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Host 	string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port 	string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	Topic 	string `yaml:"topic" env:"KAFKA_TOPIC" env-default:"wallet-events"`
}

type RedisService struct {
	Enabled 	bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr 		string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password 	string `yaml:"password" env:"REDIS_PASSWORD"`
	DB 			int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Gateway struct {
	BaseURL 		string 			`yaml:"base_url" env:"SEPAY_BASE_URL" env-default:"https://my.sepay.vn/userapi"`
	APIToken 		string 			`yaml:"api_token" env:"SEPAY_API_TOKEN"`
	AccountNumber 	string 			`yaml:"account_number" env:"SEPAY_ACCOUNT_NUMBER"`
	Timeout 		time.Duration 	`yaml:"timeout" env:"SEPAY_TIMEOUT" env-default:"15s"`
	PageLimit 		int 			`yaml:"page_limit" env:"SEPAY_PAGE_LIMIT" env-default:"100"`
}

type Reconcile struct {
	Enabled 	bool 			`yaml:"enabled" env:"RECONCILE_ENABLED" env-default:"true"`
	Interval 	time.Duration 	`yaml:"interval" env:"RECONCILE_INTERVAL" env-default:"5m"`
	GracePeriod time.Duration 	`yaml:"grace_period" env:"RECONCILE_GRACE" env-default:"2m"`
	Lookback 	time.Duration 	`yaml:"lookback" env:"RECONCILE_LOOKBACK" env-default:"72h"`
	Timeout 	time.Duration 	`yaml:"timeout" env:"RECONCILE_TIMEOUT" env-default:"1m"`
	LockTTL 	time.Duration 	`yaml:"lock_ttl" env:"RECONCILE_LOCK_TTL" env-default:"5m"`
}

type Reference struct {
	Prefix string `yaml:"prefix" env:"REFERENCE_PREFIX" env-default:"NAPTIEN"`
	Length int    `yaml:"length" env:"REFERENCE_LENGTH" env-default:"6"`
}

type Deposit struct {
	Currency 	string 			`yaml:"currency" env:"DEPOSIT_CURRENCY" env-default:"VND"`
	DefaultBank string 			`yaml:"default_bank" env:"DEPOSIT_DEFAULT_BANK" env-default:"mb"`
	MatchWindow time.Duration 	`yaml:"match_window" env:"DEPOSIT_MATCH_WINDOW" env-default:"24h"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
}

type BankConfig struct {
	Code 		string `yaml:"code"`
	Name 		string `yaml:"name"`
	Bin 		string `yaml:"bin"`
	AccountNo 	string `yaml:"account_no"`
	AccountName string `yaml:"account_name"`
	Hidden 		bool   `yaml:"hidden"`
}

// Load reads the YAML file at configPath and applies environment overrides.
func Load(configPath string) (*WalletConfig, error) {
	if configPath == "" {
		return nil, fmt.Errorf("WALLET_CONFIG_PATH was not found")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg WalletConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &cfg, nil
}
