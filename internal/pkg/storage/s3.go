// internal/pkg/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads images to an S3 bucket
type S3Store struct {
	client  s3PutAPI
	bucket  string
	baseURL string
}

// NewS3Store loads AWS credentials from the environment and creates an S3 image store
func NewS3Store(ctx context.Context, bucket, region, cdnBaseURL string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	baseURL := cdnBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return newS3Store(s3.NewFromConfig(cfg), bucket, baseURL), nil
}

func newS3Store(client s3PutAPI, bucket, baseURL string) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save uploads the image and returns its public URL
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name, contentType, err := objectName(filename, contentType)
	if err != nil {
		return "", err
	}

	key := path.Join(imageDir, name)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	return s.baseURL + "/" + key, nil
}
