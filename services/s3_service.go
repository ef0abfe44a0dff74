package services

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service issues presigned URLs for profile photo upload and download.
type S3Service struct {
	Client *s3.Client
	Bucket string
}

// InitializeS3Service builds the S3 client from the ambient AWS config.
func InitializeS3Service() *S3Service {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return &S3Service{
		Client: s3.NewFromConfig(cfg),
		Bucket: os.Getenv("S3_BUCKET_NAME"),
	}
}

// GenerateUploadURL returns a presigned PUT URL and the object key it uploads to.
func (ss *S3Service) GenerateUploadURL(fileName, fileType string) (string, string, error) {
	key := "profile-pics/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presigned, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for an uploaded photo.
func (ss *S3Service) GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presigned, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
