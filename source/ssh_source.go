package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SSHSource fetches the results over SFTP from the host the benchmark ran on.
type SSHSource struct {
	User  string
	Host  string
	Port  int
	Path  string
	Auths []ssh.AuthMethod
}

// NewSSHSource parses an ssh://user@host[:port]/path URI. The port defaults
// to 22.
func NewSSHSource(uri string, auths []ssh.AuthMethod) (*SSHSource, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("can't parse ssh report uri: %w", err)
	}
	if u.User == nil || u.User.Username() == "" {
		return nil, fmt.Errorf("ssh report uri %s must include a user", uri)
	}
	if u.Path == "" {
		return nil, fmt.Errorf("ssh report uri %s must include a path", uri)
	}
	port := 22
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ssh port in %s: %w", uri, err)
		}
	}
	return &SSHSource{
		User:  u.User.Username(),
		Host:  u.Hostname(),
		Port:  port,
		Path:  u.Path,
		Auths: auths,
	}, nil
}

func (s *SSHSource) Fetch(ctx context.Context) ([]byte, error) {
	client, err := s.client()
	if err != nil {
		return nil, fmt.Errorf("can't connect to %s: %w", s.Host, err)
	}
	defer client.Close()

	sftpClient, err := sftp.NewClient(client)
	if err != nil {
		return nil, fmt.Errorf("can't open sftp session: %w", err)
	}
	defer sftpClient.Close()

	f, err := sftpClient.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("can't open remote results %s: %w", s.Path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	if err != nil {
		return nil, fmt.Errorf("can't read remote results %s: %w", s.Path, err)
	}
	return buf.Bytes(), nil
}

func (s *SSHSource) String() string {
	return fmt.Sprintf("ssh://%s@%s:%d%s", s.User, s.Host, s.Port, s.Path)
}

func (s *SSHSource) client() (*ssh.Client, error) {
	cfg := &ssh.ClientConfig{
		User:            s.User,
		Auth:            s.Auths,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}
	return ssh.Dial("tcp", fmt.Sprintf("%s:%d", s.Host, s.Port), cfg)
}
