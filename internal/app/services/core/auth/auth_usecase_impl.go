package auth

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/app/services/shared/ratelimiter"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"medplus-service/internal/pkg/exceptions"
	"medplus-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	loginLimiterGroup     = "login"
	loginLimiterWindowSec = 60
	loginLimiterQuota     = 5
)

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

type authUsecase struct {
	UserRepository  contracts.UserRepository
	RedisRepository contracts.RedisRepository
	SessionService  contracts.SessionService
	MailerService   contracts.MailerService
	LoginLimiter    *ratelimiter.ResourceLimiter
	DriverConfig    *config.DriverConfig
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	sessionService contracts.SessionService,
	mailerService contracts.MailerService,
	loginLimiter *ratelimiter.ResourceLimiter,
	driverConfig *config.DriverConfig,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			UserRepository:  userRepository,
			RedisRepository: redisRepository,
			SessionService:  sessionService,
			MailerService:   mailerService,
			LoginLimiter:    loginLimiter,
			DriverConfig:    driverConfig,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterUser(ctx context.Context, request *requests.RegisterUser) (*responses.Register, error) {
	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:     request.Email,
		Password:  hashedPassword,
		Fullname:  request.Fullname,
		UserType:  request.UserType,
		Verified:  false,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}

	created, err := uc.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := uc.sendCode(ctx, created, constvars.EmailVerificationSubject, constvars.EmailVerificationBodyFormat); err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.RegisterUser created user",
		zap.String(constvars.LoggingUserIDKey, created.ID.Hex()),
	)
	return &responses.Register{
		UserID: created.ID.Hex(),
		Email:  created.Email,
	}, nil
}

func (uc *authUsecase) VerifyEmail(ctx context.Context, request *requests.VerifyEmail) error {
	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(nil)
	}

	if err := uc.consumeCode(ctx, request.Email, request.Code); err != nil {
		return err
	}

	user.Verified = true
	_, err = uc.UserRepository.Update(ctx, user)
	return err
}

func (uc *authUsecase) LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.Login, error) {
	limiterResult, err := uc.LoginLimiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:      request.Email,
		LimiterGroupName:  loginLimiterGroup,
		WindowDurationSec: loginLimiterWindowSec,
		MaxQuota:          loginLimiterQuota,
	})
	if err != nil {
		return nil, err
	}
	if !limiterResult.Allowed {
		return nil, exceptions.ErrTooManyRequests(nil)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}
	if !user.Verified {
		return nil, exceptions.ErrEmailNotVerified(nil)
	}

	_, token, err := uc.SessionService.CreateSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &responses.Login{
		Token:    token,
		UserID:   user.ID.Hex(),
		UserType: user.UserType,
	}, nil
}

func (uc *authUsecase) LogoutUser(ctx context.Context, sessionID string) error {
	return uc.SessionService.DeleteSession(ctx, sessionID)
}

func (uc *authUsecase) ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error {
	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(nil)
	}

	return uc.sendCode(ctx, user, constvars.EmailResetPasswordSubject, constvars.EmailResetPasswordBodyFormat)
}

func (uc *authUsecase) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(nil)
	}

	if err := uc.consumeCode(ctx, request.Email, request.Code); err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	_, err = uc.UserRepository.Update(ctx, user)
	return err
}

// sendCode stores a short-lived one-time code in Redis and enqueues the
// email carrying it.
func (uc *authUsecase) sendCode(ctx context.Context, user *models.User, subject, bodyFormat string) error {
	code, err := utils.GenerateOTP(constvars.EMAIL_VERIFICATION_CODE_LENGTH)
	if err != nil {
		return exceptions.ErrServerProcess(err)
	}

	key := fmt.Sprintf(constvars.RedisKeyVerificationCodeFormat, user.Email)
	if err := uc.RedisRepository.Set(ctx, key, code, uc.InternalConfig.App.VerificationCodeExpiry); err != nil {
		return err
	}

	expiryMinutes := int(uc.InternalConfig.App.VerificationCodeExpiry.Minutes())
	payload := &requests.EmailPayload{
		Subject:  subject,
		From:     uc.DriverConfig.SMTP.EmailSender,
		To:       []string{user.Email},
		HTMLBody: fmt.Sprintf(bodyFormat, user.Fullname, code, expiryMinutes),
	}
	if err := uc.MailerService.Enqueue(ctx, payload); err != nil {
		return err
	}

	uc.Log.Info("authUsecase.sendCode enqueued email",
		zap.String(constvars.LoggingUserIDKey, user.ID.Hex()),
		zap.Int(constvars.LoggingVerificationExpiryKey, expiryMinutes),
	)
	return nil
}

// consumeCode validates the one-time code and deletes it so it cannot be
// replayed.
func (uc *authUsecase) consumeCode(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(constvars.RedisKeyVerificationCodeFormat, email)
	stored, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		return err
	}
	if stored == "" {
		return exceptions.ErrVerificationCodeExpired(nil)
	}

	// Codes are JSON-encoded strings in Redis.
	if stored != fmt.Sprintf("\"%s\"", code) {
		return exceptions.ErrVerificationCodeInvalid(nil)
	}

	return uc.RedisRepository.Delete(ctx, key)
}
