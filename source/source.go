// Package source fetches a benchmark results document from wherever the
// benchmark run left it: a local file, a remote host, or an S3 bucket.
package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"golang.org/x/crypto/ssh"
)

// A Source fetches the raw bytes of one benchmark results document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)

	// A human-friendly description of where the results come from. Only used for logging.
	String() string
}

// Options carries the credentials a non-local source may need.
type Options struct {
	AWSConfig aws.Config
	SSHAuths  []ssh.AuthMethod
}

// ForURI picks a source by scheme: s3://bucket/key, ssh://user@host[:port]/path,
// anything else is a local file path.
func ForURI(uri string, opts Options) (Source, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		return NewS3Source(uri, opts.AWSConfig)
	case strings.HasPrefix(uri, "ssh://"):
		return NewSSHSource(uri, opts.SSHAuths)
	default:
		return &FileSource{Path: uri}, nil
	}
}

// FileSource reads the results from a local path.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	buf, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("can't read benchmark results: %w", err)
	}
	return buf, nil
}

func (s *FileSource) String() string {
	return s.Path
}
