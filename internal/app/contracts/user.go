package contracts

import (
	"context"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*responses.Profile, error)
	UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.Profile, error)
	RegisterDevice(ctx context.Context, userID string, request *requests.RegisterDevice) error
	PresignProfileImage(ctx context.Context, userID string, request *requests.PresignProfileImage) (*responses.PresignedUpload, error)
}
