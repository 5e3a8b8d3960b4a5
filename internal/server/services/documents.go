package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recrutement/internal/common"
	sc "github.com/dmitrijs2005/recrutement/internal/server/config"
	"github.com/dmitrijs2005/recrutement/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

var errStorageDisabled = common.NewPublicError(common.ErrServiceUnavailable, "document storage is not configured")

// DocumentService hands out presigned S3 URLs for a candidature's CV. The
// file itself never passes through the API.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *DocumentService {
	return &DocumentService{db: db, repomanager: m, config: config}
}

// DocumentStorageKey returns a fresh object key under the user's prefix.
func DocumentStorageKey(userID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("candidatures/%s/%d/%02d/%02d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *DocumentService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.config.S3Region)}
	if s.config.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// RequestUpload returns a new storage key and a presigned PUT URL for it,
// and records the key on the user's candidature.
func (s *DocumentService) RequestUpload(ctx context.Context, userID string) (string, string, error) {
	if !s.config.S3Enabled() {
		return "", "", errStorageDisabled
	}

	repo := s.repomanager.Candidatures(s.db)
	if _, err := repo.GetByUserID(ctx, userID); err != nil {
		return "", "", candidatureLookupError(err)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := DocumentStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.DocumentURLTTL))
	if err != nil {
		return "", "", fmt.Errorf("error presigning upload: %w", err)
	}

	if _, err := repo.SetDocumentKey(ctx, userID, key); err != nil {
		return "", "", candidatureLookupError(err)
	}

	return key, req.URL, nil
}

// RequestDownload returns a presigned GET URL for the user's document.
func (s *DocumentService) RequestDownload(ctx context.Context, userID string) (string, error) {
	if !s.config.S3Enabled() {
		return "", errStorageDisabled
	}

	c, err := s.repomanager.Candidatures(s.db).GetByUserID(ctx, userID)
	if err != nil {
		return "", candidatureLookupError(err)
	}
	if c.DocumentKey == nil {
		return "", common.NewPublicError(common.ErrorNotFound, "no document uploaded")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    c.DocumentKey,
	}, s3.WithPresignExpires(s.config.DocumentURLTTL))
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return req.URL, nil
}

func candidatureLookupError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.NewPublicError(common.ErrorNotFound, "candidature not found")
	}
	return fmt.Errorf("error loading candidature: %w", err)
}
