// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Mongo      `yaml:"mongo"`
	HTTPServer `yaml:"http_server"`
	JWTToken   `yaml:"jwt"`
	Redis      `yaml:"redis"`
	RabbitMQ   `yaml:"rabbitmq"`
	Payment    `yaml:"payment"`
	RateLimit  `yaml:"rate_limit"`
	SMTP       `yaml:"smtp"`
}

// Mongo структура для настройки подключения к MongoDB
type Mongo struct {
	URI            string        `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database       string        `yaml:"database" env:"MONGO_DATABASE" env-default:"vigorVista"`
	Timeout        time.Duration `yaml:"timeout" env-default:"10s"`
	MigrationsPath string        `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":5000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Redis структура для настройки кеша. Пустой адрес отключает кеш.
type Redis struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	CacheTTL    time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

// RabbitMQ структура для публикации доменных событий. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"vigorvista.events"`
	Retries  int    `yaml:"retries" env-default:"5"`
}

// Payment структура для настройки платежного провайдера
type Payment struct {
	SecretKey string        `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	APIURL    string        `yaml:"api_url" env-default:"https://api.stripe.com"`
	Currency  string        `yaml:"currency" env-default:"usd"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

// RateLimit ограничения для голосования и создания платежей
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// SMTP структура для отправки писем воркером уведомлений
type SMTP struct {
	Host string `yaml:"host" env:"SMTP_HOST"`
	Port string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	User string `yaml:"user" env:"SMTP_USER"`
	Pass string `yaml:"pass" env:"SMTP_PASS"`
	From string `yaml:"from" env:"SMTP_FROM"`
}

// ErrMissingJWTSecret возвращается, если не задан ключ подписи токенов.
var ErrMissingJWTSecret = errors.New("jwt secret is not set")

// Load читает конфиг из файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.JWTToken.Secret == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingJWTSecret)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Mongo:\n"+
			"  Database: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWT:\n"+
			"  TokenTTL: %s\n"+
			"Redis:\n"+
			"  Address: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"Payment:\n"+
			"  APIURL: %s\n"+
			"  Currency: %s\n",
		c.Env,
		c.Mongo.Database,
		c.Mongo.Timeout,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.JWTToken.TokenTTL,
		c.Redis.Address,
		c.Redis.DB,
		c.Redis.CacheTTL,
		c.RabbitMQ.Exchange,
		c.Payment.APIURL,
		c.Payment.Currency,
	)
}
