// Package sthree probes S3-backed DVC remotes.
package sthree

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"

	"github.com/mlcup/dvcboot/pkg/storage"
)

// PageSize bounds a single listing request.
const PageSize = 1000

type Option func(*s3Store)

// Bucket sets the bucket to probe.
func Bucket(bucket string) Option {
	return func(s *s3Store) {
		s.bucket = bucket
	}
}

// AWSConfig overrides the AWS client configuration.
func AWSConfig(cfg *aws.Config) Option {
	return func(s *s3Store) {
		s.awsConfig = cfg
	}
}

// API overrides the S3 client, for tests.
func API(api s3iface) Option {
	return func(s *s3Store) {
		s.s3 = api
	}
}

// s3iface is the slice of the S3 API the probe uses.
type s3iface interface {
	HeadObjectWithContext(aws.Context, *s3.HeadObjectInput, ...request.Option) (*s3.HeadObjectOutput, error)
	ListObjectsPagesWithContext(aws.Context, *s3.ListObjectsInput, func(*s3.ListObjectsOutput, bool) bool, ...request.Option) error
}

// New creates an S3-backed probe.
func New(option Option, options ...Option) storage.Store {
	s := new(s3Store)
	option(s)
	for _, apply := range options {
		apply(s)
	}
	if s.s3 == nil {
		s.s3 = s3.New(session.Must(session.NewSession(s.awsConfig)))
	}
	return s
}

type s3Store struct {
	bucket    string
	awsConfig *aws.Config
	s3        s3iface
}

func (s *s3Store) Has(ctx context.Context, key string) (bool, error) {
	_, err := s.s3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if mapped := mapError(err); mapped == storage.ErrNotFound {
			return false, nil
		} else if mapped != err {
			return false, mapped
		}
		return false, errors.Wrapf(err, "head %q", key)
	}
	return true, nil
}

func (s *s3Store) KeysPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	var keys []string
	eachPage := func(page *s3.ListObjectsOutput, more bool) bool {
		for _, obj := range page.Contents {
			key := aws.StringValue(obj.Key)
			if key != "" {
				keys = append(keys, key)
			}
			if limit > 0 && len(keys) >= limit {
				return false
			}
		}
		return more
	}
	params := &s3.ListObjectsInput{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(PageSize),
	}
	if err := s.s3.ListObjectsPagesWithContext(ctx, params, eachPage); err != nil {
		return nil, mapError(err)
	}
	return keys, nil
}

func (s *s3Store) String() string {
	return "s3@" + s.bucket
}

// SplitURL splits an s3://bucket/prefix remote URL into its bucket and
// prefix parts.
func SplitURL(url string) (bucket, prefix string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(url, scheme) {
		return "", "", errors.Errorf("not an s3 url: %q", url)
	}
	rest := strings.TrimPrefix(url, scheme)
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] == "" {
		return "", "", errors.Errorf("no bucket in url: %q", url)
	}
	bucket = parts[0]
	if len(parts) == 2 {
		prefix = parts[1]
	}
	return bucket, prefix, nil
}
