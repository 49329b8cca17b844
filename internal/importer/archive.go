package importer

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// S3Uploader is the subset of the S3 client used for archival.
type S3Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver copies cleaned import workbooks to S3 so every review file
// is retained after the operator's machine moves on.
type Archiver struct {
	client S3Uploader
	bucket string
	prefix string
}

// NewArchiver builds an archiver from archive config. The AWS profile
// is honored for local runs; in a container the default credential
// chain applies.
func NewArchiver(ctx context.Context, cfg appconfig.ArchiveConfig) (*Archiver, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if profile := cfg.GetAWSProfile(); profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Archiver{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// SetClient substitutes the S3 client (useful for testing).
func (a *Archiver) SetClient(client S3Uploader) { a.client = client }

// Archive uploads the file at localPath under a date-stamped key and
// returns the key.
func (a *Archiver) Archive(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	key := path.Join(a.prefix, time.Now().UTC().Format("2006-01-02"), filepath.Base(localPath))

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
	})
	if err != nil {
		return "", fmt.Errorf("archive to s3://%s/%s: %w", a.bucket, key, err)
	}

	logger.Info("cleaned workbook archived", "bucket", a.bucket, "key", key)
	return key, nil
}
