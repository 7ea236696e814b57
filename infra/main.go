package infra

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/tnqbao/gau-sequia-service/config"
	"github.com/tnqbao/gau-sequia-service/infra/produce"
)

type Infra struct {
	Database  *DatabaseClient
	Redis     *RedisClient
	Logger    *LoggerClient
	Telemetry *TelemetryClient
	Metrics   *Metrics
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
	Weather   WeatherProvider
	Sessions  SessionStore
	Clock     clockwork.Clock
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry, err := InitTelemetry(context.Background(), cfg.EnvConfig)
	if err != nil {
		panic("Failed to initialize Telemetry service: " + err.Error())
	}

	database := InitDatabaseClient(cfg.EnvConfig)
	if database == nil {
		panic("Failed to initialize Database service")
	}

	redis := InitRedisClient(cfg.EnvConfig)
	if redis == nil {
		panic("Failed to initialize Redis service")
	}

	metrics := NewMetrics()

	// RabbitMQ is optional: without it accounts still work, only the emails are skipped.
	var rabbitMQ *RabbitMQClient
	var produceService *produce.Produce
	if cfg.EnvConfig.RabbitMQ.Enabled {
		rabbitMQ, err = InitRabbitMQClient(cfg.EnvConfig)
		if err != nil {
			log.Printf("Warning: Failed to initialize RabbitMQ service: %v (emails will not be sent)", err)
		} else {
			produceService, err = produce.InitProduce(rabbitMQ.Channel)
			if err != nil {
				log.Printf("Warning: Failed to initialize Produce service: %v (emails will not be sent)", err)
				produceService = nil
			}
		}
	}

	infraInstance = &Infra{
		Database:  database,
		Redis:     redis,
		Logger:    logger,
		Telemetry: telemetry,
		Metrics:   metrics,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
		Weather:   InitWeatherService(cfg.EnvConfig, metrics),
		Sessions:  NewRedisSessionStore(redis, time.Duration(cfg.EnvConfig.Session.TTL)*time.Second),
		Clock:     clockwork.NewRealClock(),
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}

// Close releases every client in reverse start order.
func (i *Infra) Close(ctx context.Context) error {
	var errs []error
	if i.RabbitMQ != nil {
		errs = append(errs, i.RabbitMQ.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.Database != nil {
		errs = append(errs, i.Database.Close())
	}
	if i.Telemetry != nil {
		errs = append(errs, i.Telemetry.Shutdown(ctx))
	}
	if i.Logger != nil {
		errs = append(errs, i.Logger.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
