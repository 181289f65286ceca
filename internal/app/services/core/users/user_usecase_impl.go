package users

import (
	"context"
	"fmt"
	"medplus-service/internal/app/config"
	"medplus-service/internal/app/contracts"
	"medplus-service/internal/app/models"
	"medplus-service/internal/pkg/dto/requests"
	"medplus-service/internal/pkg/dto/responses"
	"medplus-service/internal/pkg/exceptions"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

type userUsecase struct {
	UserRepository      contracts.UserRepository
	InsuranceRepository contracts.InsuranceRepository
	MinioStorage        contracts.Storage
	DriverConfig        *config.DriverConfig
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	insuranceRepository contracts.InsuranceRepository,
	minioStorage contracts.Storage,
	driverConfig *config.DriverConfig,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		userUsecaseInstance = &userUsecase{
			UserRepository:      userRepository,
			InsuranceRepository: insuranceRepository,
			MinioStorage:        minioStorage,
			DriverConfig:        driverConfig,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
	})
	return userUsecaseInstance
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*responses.Profile, error) {
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.buildProfileResponse(ctx, user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, request *requests.UpdateProfile) (*responses.Profile, error) {
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Fullname != "" {
		user.Fullname = request.Fullname
	}
	if request.InsuranceProviderID != "" {
		insuranceOID, err := primitive.ObjectIDFromHex(request.InsuranceProviderID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		insurance, err := uc.InsuranceRepository.FindByID(ctx, insuranceOID)
		if err != nil {
			return nil, err
		}
		if insurance == nil {
			return nil, exceptions.ErrInsuranceNotFound(nil)
		}
		user.InsuranceProviderID = &insuranceOID
	}
	if request.InsuranceNumber != "" {
		user.InsuranceNumber = request.InsuranceNumber
	}

	updated, err := uc.UserRepository.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return uc.buildProfileResponse(ctx, updated), nil
}

func (uc *userUsecase) RegisterDevice(ctx context.Context, userID string, request *requests.RegisterDevice) error {
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return err
	}

	user.PushToken = request.PushToken
	_, err = uc.UserRepository.Update(ctx, user)
	return err
}

// PresignProfileImage hands the client a presigned PUT URL and records the
// object name up front. Image bytes never pass through this service.
func (uc *userUsecase) PresignProfileImage(ctx context.Context, userID string, request *requests.PresignProfileImage) (*responses.PresignedUpload, error) {
	user, err := uc.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("profiles/%s/%s_%s", user.ID.Hex(), uuid.NewString(), request.Filename)
	uploadURL, err := uc.MinioStorage.PresignedPutURL(ctx, uc.DriverConfig.Minio.BucketName, objectName, uc.InternalConfig.App.PresignExpiry)
	if err != nil {
		return nil, err
	}

	user.ProfileImageObject = objectName
	if _, err := uc.UserRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return &responses.PresignedUpload{
		UploadURL:  uploadURL,
		ObjectName: objectName,
		ExpiresIn:  int(uc.InternalConfig.App.PresignExpiry.Seconds()),
	}, nil
}

func (uc *userUsecase) findUser(ctx context.Context, userID string) (*models.User, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	user, err := uc.UserRepository.FindByID(ctx, userOID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotExist(nil)
	}
	return user, nil
}

func (uc *userUsecase) buildProfileResponse(ctx context.Context, user *models.User) *responses.Profile {
	profile := &responses.Profile{
		UserID:          user.ID.Hex(),
		Email:           user.Email,
		Fullname:        user.Fullname,
		UserType:        user.UserType,
		Verified:        user.Verified,
		PushToken:       user.PushToken,
		InsuranceNumber: user.InsuranceNumber,
	}
	if user.InsuranceProviderID != nil {
		profile.InsuranceProviderID = user.InsuranceProviderID.Hex()
	}
	if user.ProfileImageObject != "" {
		imageURL, err := uc.MinioStorage.PresignedGetURL(ctx, uc.DriverConfig.Minio.BucketName, user.ProfileImageObject, uc.InternalConfig.App.PresignExpiry)
		if err != nil {
			uc.Log.Error("userUsecase.buildProfileResponse failed to presign profile image",
				zap.String("object_name", user.ProfileImageObject),
				zap.Error(err),
			)
		} else {
			profile.ProfileImageURL = imageURL
		}
	}
	return profile
}
