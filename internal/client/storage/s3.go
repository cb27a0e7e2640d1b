// Package storage mirrors downloaded documents to an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

const linkExpiry = 15 * time.Minute

var ErrNoBucket = errors.New("storage bucket is required")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config selects the bucket and how to reach it. Without AccessKey the
// default AWS credential chain is used; BaseEndpoint targets MinIO and
// other S3-compatible servers with path-style addressing.
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type S3Archiver struct {
	bucket    string
	prefix    string
	uploader  uploader
	presigner presigner
	now       func() time.Time
	newID     func() string
}

// Archived describes a stored copy.
type Archived struct {
	Key string
	URL string
}

func NewS3Archiver(ctx context.Context, c S3Config) (*S3Archiver, error) {
	if c.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Archiver(c.Bucket, c.Prefix, manager.NewUploader(client), s3.NewPresignClient(client)), nil
}

func newS3Archiver(bucket, prefix string, up uploader, ps presigner) *S3Archiver {
	return &S3Archiver{
		bucket:    bucket,
		prefix:    strings.Trim(prefix, "/"),
		uploader:  up,
		presigner: ps,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Key builds <prefix>/users/<username>/<y>/<m>/<d>/<uuid>-<name>.
func (a *S3Archiver) Key(username, name string) string {
	d := a.now()
	key := fmt.Sprintf("users/%s/%d/%d/%d/%s-%s", username, d.Year(), d.Month(), d.Day(), a.newID(), path.Base(name))
	if a.prefix != "" {
		key = a.prefix + "/" + key
	}
	return key
}

// Archive uploads the file at localPath privately and returns a presigned
// download link valid for 15 minutes.
func (a *S3Archiver) Archive(ctx context.Context, username, localPath string) (Archived, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return Archived{}, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := a.Key(username, f.Name())
	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return Archived{}, fmt.Errorf("upload %s: %w", key, err)
	}

	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(linkExpiry))
	if err != nil {
		return Archived{Key: key}, fmt.Errorf("presign %s: %w", key, err)
	}

	return Archived{Key: key, URL: req.URL}, nil
}
