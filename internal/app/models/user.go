package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty"`
	Email               string              `bson:"email"`
	Password            string              `bson:"password"`
	Fullname            string              `bson:"fullname"`
	UserType            string              `bson:"userType"`
	Verified            bool                `bson:"verified"`
	PushToken           string              `bson:"pushToken,omitempty"`
	InsuranceProviderID *primitive.ObjectID `bson:"insuranceProviderId,omitempty"`
	InsuranceNumber     string              `bson:"insuranceNumber,omitempty"`
	ProfileImageObject  string              `bson:"profileImageObject,omitempty"`
	TimeModel           `bson:",inline"`
}
