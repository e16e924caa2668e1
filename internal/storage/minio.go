package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// folder is the key prefix all product media lives under.
const folder = "products"

// ErrNotStored is the diagnostic on a DeleteResult when no object matched the
// public ID.
var ErrNotStored = errors.New("no object for public id")

// MinioStore implements BlobStore using a MinIO (or any S3-compatible) backend.
// Public URLs carry a /v<unix>/ cache-busting segment that the CDN in front of
// the bucket strips; it also gives every URL the versioned shape that
// ExtractPublicID parses.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists with a
// public-read policy, and returns a ready-to-use MinioStore.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Printf("storage: created bucket %q", bucket)
	}

	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &MinioStore{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Upload stores the file under a generated unique name, bounding raster
// images to the maximum display dimension first, and returns the object's
// public URL and ID.
func (s *MinioStore) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (*Object, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", filename, err)
	}

	bounded, err := boundImage(data, contentType)
	if err != nil {
		// Undecodable despite its content type: store the original bytes.
		log.Printf("storage: %q not resized: %v", filename, err)
		bounded = data
	}

	now := time.Now()
	base, ext := objectName(filename, now)
	publicID := folder + "/" + base
	key := publicID + ext

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(bounded), int64(len(bounded)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	return &Object{
		URL:      s.publicBase + "/v" + strconv.FormatInt(now.Unix(), 10) + "/" + key,
		PublicID: publicID,
	}, nil
}

// Delete removes every object stored under the public ID (one per format in
// practice). It never returns an error: the outcome travels in the result.
func (s *MinioStore) Delete(ctx context.Context, publicID string) DeleteResult {
	res := DeleteResult{PublicID: publicID}

	// The stored key is the public ID plus an extension the caller does not
	// know, so match by prefix.
	prefix := publicID + "."
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			res.Err = obj.Err
			return res
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			res.Err = err
			return res
		}
		res.Deleted = true
	}

	if !res.Deleted && res.Err == nil {
		res.Err = ErrNotStored
	}
	return res
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET
// on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
