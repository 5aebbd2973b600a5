package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-version"
)

// S3Source fetches the results from an S3 bucket, e.g. one a CI run uploaded
// them to. A key ending in / is treated as a prefix and the newest versioned
// report under it is fetched.
type S3Source struct {
	Bucket string
	Key    string

	s3 *s3.Client
}

// NewS3Source parses an s3://bucket/key URI.
func NewS3Source(uri string, cfg aws.Config) (*S3Source, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("can't parse s3 report uri: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("s3 report uri %s must include a bucket", uri)
	}
	return &S3Source{
		Bucket: u.Host,
		Key:    strings.TrimPrefix(u.Path, "/"),
		s3:     s3.NewFromConfig(cfg),
	}, nil
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	key := s.Key
	if key == "" || strings.HasSuffix(key, "/") {
		keys, err := s.listKeys(ctx, key)
		if err != nil {
			return nil, err
		}
		key, err = LatestReportKey(keys)
		if err != nil {
			return nil, fmt.Errorf("s3://%s/%s: %w", s.Bucket, s.Key, err)
		}
	}

	downloader := manager.NewDownloader(s.s3)
	buf := manager.NewWriteAtBuffer(nil)
	_, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("can't download s3://%s/%s: %w", s.Bucket, key, err)
	}
	return buf.Bytes(), nil
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func (s *S3Source) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var token *string
	for {
		out, err := s.s3.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &s.Bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("can't list s3://%s/%s: %w", s.Bucket, prefix, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, *obj.Key)
		}
		if out.NextContinuationToken == nil {
			break
		}
		token = out.NextContinuationToken
	}
	return keys, nil
}

var reportVersionRE = regexp.MustCompile(`-v(\d+(?:\.\d+)+)\.json$`)

// LatestReportKey picks the report key with the highest embedded version,
// e.g. benchmarks-results-v1.2.3.json. Keys without a version lose to keys
// with one; with no versioned key at all the lexically last json key wins.
func LatestReportKey(keys []string) (string, error) {
	var best string
	var bestVersion *version.Version
	var jsonKeys []string
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		jsonKeys = append(jsonKeys, key)
		m := reportVersionRE.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		v, err := version.NewVersion(m[1])
		if err != nil {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best = key
			bestVersion = v
		}
	}
	if best != "" {
		return best, nil
	}
	if len(jsonKeys) == 0 {
		return "", fmt.Errorf("no report objects found")
	}
	sort.Strings(jsonKeys)
	return jsonKeys[len(jsonKeys)-1], nil
}
