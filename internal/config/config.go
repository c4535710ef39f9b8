package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Local"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Mongo struct {
		URI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
		Database string `env:"MONGO_DATABASE" envDefault:"telemed"`
	}

	Auth struct {
		Username string `env:"AUTH_BASIC_USERNAME" envDefault:"booking_engine"`
		Password string `env:"AUTH_BASIC_PASSWORD" envDefault:"booking_engine"`
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		UpdatesExchange      string `env:"RABBITMQ_UPDATES_EXCHANGE" envDefault:"backend.updates"`
		AppointmentQueue     string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"booking-slots-engine.appointment"`
		AppointmentQueueBind string `env:"RABBITMQ_APPOINTMENT_QUEUE_BIND" envDefault:"backend.booking-slots-engine.appointment.*.*"`
		ScheduleQueue        string `env:"RABBITMQ_SCHEDULE_QUEUE" envDefault:"booking-slots-engine.schedule"`
		ScheduleQueueBind    string `env:"RABBITMQ_SCHEDULE_QUEUE_BIND" envDefault:"backend.booking-slots-engine.schedule.*.*"`

		NotificationsExchange string `env:"RABBITMQ_NOTIFICATIONS_EXCHANGE" envDefault:"notifications"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED"`
		Size    int  `env:"CACHE_SIZE" envDefault:"1000"`
	}

	Reminders struct {
		Enabled  bool   `env:"REMINDERS_ENABLED"`
		CronSpec string `env:"REMINDERS_CRON" envDefault:"*/5 * * * *"`
	}
}

func NewConfig() (*Config, error) {
	// .env для локальной разработки, в контейнере переменные уже выставлены
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Без событий об изменениях кэш не инвалидируется - не включаем
	if !cfg.RabbitMq.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
