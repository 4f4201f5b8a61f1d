package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store uploads captured meal photos and hands back the CloudFront URL
// that gets stored on the meal log row.
type S3Store struct {
	client *s3.Client
	bucket string
	cdnURL string
}

func NewS3Store(ctx context.Context) (*S3Store, error) {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: os.Getenv("S3_BUCKET"),
		cdnURL: os.Getenv("CLOUDFRONT_URL"),
	}, nil
}

// UploadMealPhoto accepts either a bare base64 payload or a full data URI
// ("data:image/jpeg;base64,..."). Keys are namespaced per user so photos can
// be cleaned up with the account.
func (s *S3Store) UploadMealPhoto(ctx context.Context, imageBase64, keyPrefix string) (string, error) {
	contentType := "image/jpeg"
	data := imageBase64

	if strings.HasPrefix(imageBase64, "data:") {
		parts := strings.SplitN(imageBase64, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid base64 image")
		}
		mediaType := strings.TrimPrefix(parts[0], "data:") // "image/jpeg;base64"
		contentType = strings.SplitN(mediaType, ";", 2)[0]
		data = parts[1]
	}

	imageData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	ext := ".jpg"
	if contentType != "image/jpeg" && contentType != "image/jpg" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
			ext = "." + parts[1]
		}
	}

	key := fmt.Sprintf("meal-photos/%s/%d%s", keyPrefix, time.Now().UnixNano(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.cdnURL, key), nil
}
