package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Insurance struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Active      bool               `bson:"active"`
	TimeModel   `bson:",inline"`
}
