package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Database    Database `envPrefix:"DATABASE_"`

	Auth       Auth    `envPrefix:"AUTH_"`
	Session    Session `envPrefix:"SESSION_"`
	Pagination Pagination
	LocalStore LocalStore `envPrefix:"LOCAL_STORE_"`
	Telegram   Telegram   `envPrefix:"TELEGRAM_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Kafka      Kafka      `envPrefix:"KAFKA_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // mysql | sqlite
	URL    string `env:"URL" envDefault:"storefront.db"`
}

type Auth struct {
	JWTSecret   string        `env:"JWT_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"72h"`
	AdminEmails []string      `env:"ADMIN_EMAILS" envSeparator:","`
}

type Session struct {
	LoadTimeout time.Duration `env:"LOAD_TIMEOUT" envDefault:"6s"`
}

type Pagination struct {
	AdminPageSize     int `env:"ADMIN_PAGE_SIZE" envDefault:"10"`
	DashboardPageSize int `env:"DASHBOARD_PAGE_SIZE" envDefault:"5"`
}

type LocalStore struct {
	Path string `env:"PATH" envDefault:"data/local"`
}

type Telegram struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"https://api.telegram.org"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Cloudinary struct {
	URL    string `env:"URL"`
	Folder string `env:"FOLDER" envDefault:"storefront"`
}

type Kafka struct {
	Brokers []string      `env:"BROKERS" envSeparator:","`
	Topic   string        `env:"TOPIC" envDefault:"storefront.events"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"2s"`
}

func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

func (c *Config) IsProduction() bool {
	return c.Environment.Name == "production"
}
