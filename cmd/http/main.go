package main

import (
	"context"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/delivery/http/middlewares"
	"medplus-service/internal/app/delivery/http/routers"
	"medplus-service/internal/app/drivers/database"
	"medplus-service/internal/app/drivers/logger"
	"medplus-service/internal/app/drivers/mailer"
	"medplus-service/internal/app/drivers/messaging"
	"medplus-service/internal/app/drivers/storage"
	"medplus-service/internal/app/services/core/appointments"
	"medplus-service/internal/app/services/core/auth"
	"medplus-service/internal/app/services/core/insurances"
	"medplus-service/internal/app/services/core/mail"
	"medplus-service/internal/app/services/core/reminders"
	"medplus-service/internal/app/services/core/schedules"
	"medplus-service/internal/app/services/core/session"
	"medplus-service/internal/app/services/core/slots"
	"medplus-service/internal/app/services/core/users"
	"medplus-service/internal/app/services/shared/locker"
	"medplus-service/internal/app/services/shared/mailqueue"
	"medplus-service/internal/app/services/shared/notifier"
	"medplus-service/internal/app/services/shared/ratelimiter"
	redisrepo "medplus-service/internal/app/services/shared/redis"
	"medplus-service/internal/app/services/shared/smtp"
	miniostorage "medplus-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error during shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	loginLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	minioStorage := miniostorage.NewMinioStorage(storage.NewMinio(bootstrap.DriverConfig))
	smtpService := smtp.NewSmtpService(mailer.NewSMTPClient(bootstrap.DriverConfig))
	pushNotifier := notifier.NewExpoNotifier(bootstrap.InternalConfig, bootstrap.Logger)

	mailQueue, err := mailqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RabbitMQMailerQueue)
	if err != nil {
		logrus.Fatalf("Failed to set up mailer queue: %v", err)
	}

	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoClient, dbName)
	slotRepository := slots.NewSlotMongoRepository(bootstrap.MongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)
	recurrencePlanRepository := schedules.NewRecurrencePlanMongoRepository(bootstrap.MongoClient, dbName)
	insuranceRepository := insurances.NewInsuranceMongoRepository(bootstrap.MongoClient, dbName)

	// Session
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	// Auth
	authUsecase := auth.NewAuthUsecase(
		userRepository,
		redisRepository,
		sessionService,
		mailQueue,
		loginLimiter,
		bootstrap.DriverConfig,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	authController := auth.NewAuthController(bootstrap.Logger, authUsecase)

	// User
	userUsecase := users.NewUserUsecase(
		userRepository,
		insuranceRepository,
		minioStorage,
		bootstrap.DriverConfig,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	userController := users.NewUserController(bootstrap.Logger, userUsecase)

	// Schedule
	scheduleUsecase := schedules.NewScheduleUsecase(
		slotRepository,
		recurrencePlanRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleController := schedules.NewScheduleController(bootstrap.Logger, scheduleUsecase)

	// Appointment
	appointmentUsecase := appointments.NewAppointmentUsecase(
		slotRepository,
		appointmentRepository,
		redisRepository,
		bootstrap.Logger,
	)
	appointmentController := appointments.NewAppointmentController(bootstrap.Logger, appointmentUsecase)

	// Insurance
	insuranceUsecase := insurances.NewInsuranceUsecase(insuranceRepository, bootstrap.Logger)
	insuranceController := insurances.NewInsuranceController(bootstrap.Logger, insuranceUsecase)

	// Background workers
	reminderUsecase := reminders.NewReminderUsecase(
		appointmentRepository,
		userRepository,
		pushNotifier,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	reminderWorker := reminders.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, reminderUsecase)
	bootstrap.ReminderWorkerStop = reminderWorker.Start(context.Background())

	mailWorker := mail.NewWorker(bootstrap.Logger, mailQueue, smtpService)
	mailWorkerStop, err := mailWorker.Start(context.Background())
	if err != nil {
		logrus.Fatalf("Failed to start mail worker: %v", err)
	}
	bootstrap.MailWorkerStop = mailWorkerStop

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		userController,
		scheduleController,
		appointmentController,
		insuranceController,
	)
}
