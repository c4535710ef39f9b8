package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	incron "github.com/medisched/booking-slots-engine/internal/adapters/in/cron"
	inhttp "github.com/medisched/booking-slots-engine/internal/adapters/in/http"
	"github.com/medisched/booking-slots-engine/internal/adapters/in/rabbitmq"
	"github.com/medisched/booking-slots-engine/internal/adapters/out/cache"
	"github.com/medisched/booking-slots-engine/internal/adapters/out/logger"
	outmongo "github.com/medisched/booking-slots-engine/internal/adapters/out/mongo"
	"github.com/medisched/booking-slots-engine/internal/adapters/out/notifier"
	"github.com/medisched/booking-slots-engine/internal/config"
	"github.com/medisched/booking-slots-engine/internal/core/ports/out"
	"github.com/medisched/booking-slots-engine/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":          cfg.App.Version,
		"env":              cfg.App.Env,
		"timezone":         cfg.App.Timezone,
		"rabbitmqEnabled":  cfg.RabbitMq.Enabled,
		"cacheEnabled":     cfg.Cache.Enabled,
		"remindersEnabled": cfg.Reminders.Enabled,
	})

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		location = time.Local
	}

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация адаптеров
	mongoClient, err := outmongo.NewClient(ctx, cfg, logger.WithModule("MongoClient"))
	if err != nil {
		logger.Error("app.mongo.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer mongoClient.Disconnect(ctx)

	scheduleStore := outmongo.NewScheduleStoreAdapter(mongoClient, cfg, logger.WithModule("ScheduleStoreAdapter"))
	appointmentStore := outmongo.NewAppointmentStoreAdapter(mongoClient, cfg, logger.WithModule("AppointmentStoreAdapter"))

	var cacheAdapter out.SlotCachePort
	if cfg.Cache.Enabled {
		lruCache, err := cache.NewSlotsCacheAdapter(cfg, logger.WithModule("SlotsCacheAdapter"))
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = lruCache
	}

	// Инициализация сервисов
	availabilityService := services.NewAvailabilityService(
		scheduleStore,
		appointmentStore,
		cacheAdapter,
		logger,
		location,
	)

	// Настройка RabbitMQ слушателя только если он включен
	var listener *rabbitmq.UpdateListener
	if cfg.RabbitMq.Enabled {
		listener, err = rabbitmq.NewUpdateListener(
			availabilityService,
			cfg,
			logger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	notifierAdapter := notifier.NewNotifierAdapter(
		mongoClient,
		listener.Channel(),
		cfg,
		logger.WithModule("NotifierAdapter"),
	)

	bookingService := services.NewBookingService(
		availabilityService,
		scheduleStore,
		appointmentStore,
		notifierAdapter,
		logger,
		location,
	)

	reminderService := services.NewReminderService(
		appointmentStore,
		notifierAdapter,
		logger,
		location,
	)

	// Cron-обход напоминаний
	reminderScheduler := incron.NewReminderScheduler(reminderService, cfg, logger)
	if err := reminderScheduler.Start(ctx); err != nil {
		logger.Error("app.reminders.start_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer reminderScheduler.Stop()

	// Настройка HTTP сервера
	router := gin.Default()
	controller := inhttp.NewBookingController(
		availabilityService,
		bookingService,
		bookingService,
		cfg,
	)
	controller.RegisterRoutes(router)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
