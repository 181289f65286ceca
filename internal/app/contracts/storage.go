package contracts

import (
	"context"
	"time"
)

type Storage interface {
	PresignedPutURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
	PresignedGetURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error)
}
