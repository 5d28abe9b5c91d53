// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения bookhub-web
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	BackendAPI      `yaml:"backend_api"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	ClientSession   `yaml:"client_session"`
	Activation      `yaml:"activation"`
}

// BackendAPI структура для настройки клиента внешнего REST-бэкенда
type BackendAPI struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CatalogTTL   time.Duration `yaml:"catalog_ttl" env-default:"10m"`
}

// ClientSession структура для подписанной cookie-сессии браузера
type ClientSession struct {
	CookieName string `yaml:"cookie_name" env-default:"bookhub_session"`
	HashKey    string `yaml:"hash_key" env:"SESSION_HASH_KEY"`
	MaxAge     int    `yaml:"max_age" env-default:"2592000"`
	Secure     bool   `yaml:"secure" env-default:"false"`
}

// Activation структура для опроса статуса подписки после возврата с оплаты
type Activation struct {
	PollInterval time.Duration `yaml:"poll_interval" env-default:"2s"`
	PollBudget   int           `yaml:"poll_budget" env-default:"5"`
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"BackendAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"ClientSession:\n"+
			"  CookieName: %s\n"+
			"  MaxAge: %d\n"+
			"Activation:\n"+
			"  PollInterval: %s\n"+
			"  PollBudget: %d\n",
		c.Env,
		c.BaseURL,
		c.Timeout,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.MaxAge,
		c.PollInterval,
		c.PollBudget,
	)
}
