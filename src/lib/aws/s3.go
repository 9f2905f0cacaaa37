package aws

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func GetS3Client() *s3.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Could not load default config: %s\n", err.Error())
		return nil
	}
	svc := s3.NewFromConfig(cfg)
	return svc
}

func assetsBucket() string {
	return os.Getenv("S3_ASSETS_BUCKET")
}

// S3CreateFolder writes the zero-byte prefix marker that the uploader UI
// treats as a folder. The returned value is the folder id stored on the
// owning record.
func S3CreateFolder(ctx context.Context, name string) (string, error) {
	client := GetS3Client()
	if client == nil {
		return "", fmt.Errorf("s3 client unavailable")
	}
	key := strings.TrimSuffix(name, "/") + "/"
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(assetsBucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Could not create folder '%s': %s\n", key, err.Error())
		return "", err
	}
	return key, nil
}

// S3DeleteFolder removes every object under the folder prefix, the marker
// object included.
func S3DeleteFolder(ctx context.Context, folderID string) error {
	client := GetS3Client()
	if client == nil {
		return fmt.Errorf("s3 client unavailable")
	}
	prefix := strings.TrimSuffix(folderID, "/") + "/"
	paginator := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(assetsBucket()),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		if len(page.Contents) == 0 {
			continue
		}
		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
		_, err = client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(assetsBucket()),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func S3DeleteFile(ctx context.Context, key string) error {
	client := GetS3Client()
	if client == nil {
		return fmt.Errorf("s3 client unavailable")
	}
	_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(assetsBucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("Could not delete object '%s': %s\n", key, err.Error())
	}
	return err
}

func S3DeleteMultipleFiles(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	client := GetS3Client()
	if client == nil {
		return fmt.Errorf("s3 client unavailable")
	}
	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}
	_, err := client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(assetsBucket()),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		log.Printf("Could not delete %d objects: %s\n", len(keys), err.Error())
	}
	return err
}

// S3KeyFromURL maps a stored asset URL back to its bucket key. Attachment
// records keep the public URL; deletes need the key.
func S3KeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.TrimPrefix(u.Path, "/")
}
