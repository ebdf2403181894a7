package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/console/history"
)

// S3Store keeps the history as one text object in an existing bucket.
type S3Store struct {
	mu sync.RWMutex

	client     *minio.Client
	bucketName string
	key        string
	open       bool
}

func NewS3Store(endpoint, bucketName, key, accessKey, secretKey string, useSsl bool) (*S3Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	if key == "" {
		key = "console/history.txt"
	}

	return &S3Store{
		client:     client,
		bucketName: bucketName,
		key:        key,
	}, nil
}

// Name returns the identifier name defined for this store
func (*S3Store) Name() string {
	return "s3"
}

func (ss *S3Store) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	exists, err := ss.client.BucketExists(ctx, ss.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", ss.bucketName)
	}

	ss.open = true
	return nil
}

func (ss *S3Store) Close(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.open = false
	return nil
}

func (ss *S3Store) Load(ctx context.Context) ([]string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if !ss.open {
		return nil, history.ErrNotOpen
	}

	obj, err := ss.client.GetObject(ctx, ss.bucketName, ss.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, err
	}

	return history.Decode(data)
}

func (ss *S3Store) Save(ctx context.Context, lines []string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.open {
		return history.ErrNotOpen
	}

	data := history.Encode(lines)
	_, err := ss.client.PutObject(ctx, ss.bucketName, ss.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	return err
}
