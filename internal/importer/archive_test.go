package importer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket string
	key    string
	body   []byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = *params.Bucket
	f.key = *params.Key
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestArchiveUploadsWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "may_cleaned.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook-bytes"), 0o644))

	fake := &fakeS3{}
	a := &Archiver{client: fake, bucket: "talent-archive", prefix: "imports"}

	key, err := a.Archive(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "talent-archive", fake.bucket)
	assert.Equal(t, key, fake.key)
	assert.Contains(t, key, "imports/")
	assert.Contains(t, key, "may_cleaned.xlsx")
	assert.Equal(t, []byte("workbook-bytes"), fake.body)
}

func TestArchivePropagatesError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	a := &Archiver{client: &fakeS3{err: assert.AnError}, bucket: "b"}

	_, err := a.Archive(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive to s3://")
}

func TestArchiveMissingFile(t *testing.T) {
	a := &Archiver{client: &fakeS3{}, bucket: "b"}
	_, err := a.Archive(context.Background(), "/nonexistent/file.xlsx")
	require.Error(t, err)
}
