package health

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func Mongo(client *mongo.Client) Checker {
	return CheckerFunc{N: "mongodb", Fn: func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}}
}

func Redis(client *redis.Client) Checker {
	return CheckerFunc{N: "redis", Fn: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}

func Minio(client *minio.Client, bucket string) Checker {
	return CheckerFunc{N: "minio", Fn: func(ctx context.Context) error {
		ok, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("bucket %q does not exist", bucket)
		}
		return nil
	}}
}
