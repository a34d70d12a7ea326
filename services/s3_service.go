package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		panic(err)
	}
	s3Client = s3.NewFromConfig(cfg)
}

// photoContentTypes are the capture formats the mobile clients upload.
var photoContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// IsSupportedPhotoType reports whether a content type is an accepted photo format.
func IsSupportedPhotoType(fileType string) bool {
	return photoContentTypes[strings.ToLower(strings.TrimSpace(fileType))]
}

// photoKey builds a timestamped object key under the configured prefix,
// defaulting to "photos/" when S3_PHOTO_PREFIX is unset.
func photoKey(fileName string) string {
	prefix := os.Getenv("S3_PHOTO_PREFIX")
	if prefix == "" {
		prefix = "photos/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + time.Now().Format("20060102150405") + "-" + fileName
}

// GenerateUploadURL generates a presigned URL for uploading a photo. Only the
// supported photo content types are presigned.
func GenerateUploadURL(fileName, fileType string) (string, string, error) {
	if !IsSupportedPhotoType(fileType) {
		return "", "", ErrUnsupportedPhotoType
	}
	key := photoKey(fileName)
	params := &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(s3Client)
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a photo
func GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(os.Getenv("S3_BUCKET_NAME")),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(s3Client)
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
