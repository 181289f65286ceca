package contracts

import (
	"context"
	"medplus-service/internal/app/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, user *models.User) (*models.Session, string, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	// ParseSessionToken verifies a bearer token and loads its session.
	ParseSessionToken(ctx context.Context, token string) (*models.Session, error)
}
