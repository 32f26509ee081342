package storage

import (
	"context"
	"io"
	"strings"

	"adboard/internal/app"
	myErr "adboard/internal/types/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	awsSession "github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

// S3Storage хранит картинки в S3-совместимом хранилище
type S3Storage struct {
	Uploader  *s3manager.Uploader
	Bucket    string
	PublicURL string
	Logger    *zap.SugaredLogger
}

func NewS3Storage(cfg app.ConfigS3, logger *zap.SugaredLogger) (*S3Storage, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.ForcePathStyle),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKey, cfg.SecretKey, "",
		),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	return newS3Storage(awsCfg, cfg.Bucket, cfg.PublicURL, logger)
}

func newS3Storage(awsCfg *aws.Config, bucket, publicURL string, logger *zap.SugaredLogger) (*S3Storage, error) {
	sess, err := awsSession.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		Uploader:  s3manager.NewUploader(sess),
		Bucket:    bucket,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
		Logger:    logger,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.Uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		s.Logger.Errorw("Failed to upload image to S3", "key", key, zap.Error(err))
		return "", myErr.ErrStorage
	}

	s.Logger.Infow("image uploaded to S3", "key", key)

	return s.PublicURL + "/" + key, nil
}
