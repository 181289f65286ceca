package config

import "time"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
	SMTP struct {
		Host        string
		Port        int
		Username    string
		Password    string
		EmailSender string
	}
)

type (
	InternalConfig struct {
		App      App
		JWT      JWT
		Reminder Reminder
		Push     Push
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeout            int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		RabbitMQMailerQueue        string
		VerificationCodeExpiry     time.Duration
		AvailabilityCacheTTL       time.Duration
		PresignExpiry              time.Duration
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	Reminder struct {
		TickInterval time.Duration
		Window       time.Duration
		LockTTL      time.Duration
	}

	Push struct {
		ExpoURL        string
		RequestTimeout time.Duration
		RatePerSecond  int
		Burst          int
	}
)
