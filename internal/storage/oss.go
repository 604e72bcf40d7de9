package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSSStorage struct {
	bucket  *oss.Bucket
	baseURL string
}

func NewOSSStorage(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSStorage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("init oss client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("open oss bucket %s: %w", bucketName, err)
	}

	return &OSSStorage{
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.%s", bucketName, endpoint),
	}, nil
}

func (s *OSSStorage) Put(path string, data []byte) (string, error) {
	key := strings.TrimPrefix(path, "/")
	if err := s.bucket.PutObject(key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *OSSStorage) Delete(url string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(url, s.baseURL), "/")
	if key == "" || key == url {
		return fmt.Errorf("url %q does not belong to this bucket", url)
	}
	return s.bucket.DeleteObject(key)
}
