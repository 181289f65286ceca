package contracts

import (
	"context"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, request *requests.RegisterUser) (*responses.Register, error)
	VerifyEmail(ctx context.Context, request *requests.VerifyEmail) error
	LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.Login, error)
	LogoutUser(ctx context.Context, sessionID string) error
	ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error
	ResetPassword(ctx context.Context, request *requests.ResetPassword) error
}
