package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOBackend stores the document as a single object. PutObject only
// becomes visible once the upload completes.
type MinIOBackend struct {
	client *minio.Client
	bucket string
	object string
}

var _ Backend = (*MinIOBackend)(nil)

func NewMinIOBackend(client *minio.Client, bucket, object string) *MinIOBackend {
	return &MinIOBackend{client: client, bucket: bucket, object: object}
}

func (m *MinIOBackend) Location() string {
	return "minio:" + m.client.EndpointURL().Host + "/" + m.bucket + "/" + m.object
}

func (m *MinIOBackend) Read(ctx context.Context) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.readErr(err)
	}
	defer obj.Close()
	b, err := io.ReadAll(obj)
	if err != nil {
		return nil, m.readErr(err)
	}
	return b, nil
}

func (m *MinIOBackend) readErr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotExist
	}
	return fmt.Errorf("%w: minio get %s/%s: %w", ErrIO, m.bucket, m.object, err)
}

func (m *MinIOBackend) Write(ctx context.Context, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, m.object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("%w: minio put %s/%s: %w", ErrIO, m.bucket, m.object, err)
	}
	return nil
}

func (m *MinIOBackend) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("%w: minio bucket %s: %w", ErrIO, m.bucket, err)
	}
	if !ok {
		return fmt.Errorf("%w: minio bucket %s does not exist", ErrIO, m.bucket)
	}
	return nil
}

// MinIOOptions holds the connection settings for ConnectMinIO.
type MinIOOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// ConnectMinIO creates a client and ensures the bucket exists.
func ConnectMinIO(ctx context.Context, o MinIOOptions) (*minio.Client, error) {
	if o.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	if o.Bucket == "" {
		return nil, fmt.Errorf("minio bucket missing")
	}
	mc, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKey, o.SecretKey, ""),
		Secure: o.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	if err := mc.MakeBucket(ctx, o.Bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exists, xerr := mc.BucketExists(ctx, o.Bucket)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return mc, nil
}
