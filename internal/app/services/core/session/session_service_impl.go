package session

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/constvars"
	"medplus-service/internal/pkg/exceptions"
	"medplus-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

// CreateSession stores the session in Redis and returns it with a signed
// JWT whose only claim of interest is the session id.
func (svc *sessionService) CreateSession(ctx context.Context, user *models.User) (*models.Session, string, error) {
	ttl := time.Duration(svc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	session := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID.Hex(),
		Email:     user.Email,
		UserType:  user.UserType,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	key := fmt.Sprintf(constvars.RedisKeySessionFormat, session.SessionID)
	if err := svc.RedisRepository.Set(ctx, key, session, ttl); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, svc.InternalConfig.JWT.Secret, svc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, "", exceptions.ErrTokenGenerate(err)
	}

	return session, token, nil
}

func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	key := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	sessionData, err := svc.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(constvars.RedisKeySessionFormat, sessionID)
	return svc.RedisRepository.Delete(ctx, key)
}

func (svc *sessionService) ParseSessionToken(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := utils.ParseSessionJWT(token, svc.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, err
	}
	return svc.GetSession(ctx, sessionID)
}
