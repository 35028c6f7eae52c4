// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package imagestore uploads destination and profile images to an
// S3-compatible bucket.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/telusuri/telusuri/internal/config"
)

// Images are immutable once uploaded, so clients may cache them for half
// a year.
const cacheControl = "max-age=15724800"

// allowedContentTypes maps the accepted upload content types to the
// object key extension.
var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ExtensionForContentType returns the key extension for an upload content
// type, false when the type is not accepted.
func ExtensionForContentType(
	contentType string,
) (string, bool) {
	ext, ok := allowedContentTypes[contentType]

	return ext, ok
}

// Store uploads and deletes image objects.
type Store struct {
	svc          s3iface.S3API
	bucket       string
	publicDomain string
	logger       *slog.Logger
}

// New factory to create a new Store instance.
func New(
	storageConfig config.Storage,
	logger *slog.Logger,
) (*Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(storageConfig.Region),
		Credentials: credentials.NewStaticCredentials(
			storageConfig.AccessKey,
			storageConfig.SecretKey,
			"",
		),
	}
	if storageConfig.Endpoint != "" {
		awsConfig.Endpoint = aws.String(storageConfig.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating storage session: %w", err)
	}

	return &Store{
		svc:          s3.New(sess),
		bucket:       storageConfig.Bucket,
		publicDomain: storageConfig.PublicDomain,
		logger:       logger,
	}, nil
}

// NewWithClient creates a Store over an existing S3 client, for tests.
func NewWithClient(
	svc s3iface.S3API,
	bucket string,
	publicDomain string,
	logger *slog.Logger,
) *Store {
	return &Store{
		svc:          svc,
		bucket:       bucket,
		publicDomain: publicDomain,
		logger:       logger,
	}
}

// NewKey builds a fresh object key under the directory, keeping the
// file extension.
func NewKey(
	directory string,
	extension string,
) string {
	return path.Join(directory, uuid.NewString()+"."+extension)
}

// Upload stores an object under the key.
func (s *Store) Upload(
	ctx context.Context,
	key string,
	body io.ReadSeeker,
	contentType string,
) error {
	_, err := s.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}

	s.logger.Debug(
		"uploaded image",
		slog.String("key", key),
		slog.String("content_type", contentType),
	)

	return nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (s *Store) Delete(
	ctx context.Context,
	key string,
) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// PublicURL resolves the key against the public serving domain.
func (s *Store) PublicURL(
	key string,
) string {
	base, err := url.Parse(s.publicDomain)
	if err != nil || s.publicDomain == "" {
		return key
	}

	ref, err := url.Parse(key)
	if err != nil {
		return key
	}

	return base.ResolveReference(ref).String()
}
