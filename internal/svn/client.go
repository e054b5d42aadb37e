// Package svn talks to the Subversion client and turns its log output into
// commit records, and orchestrates incremental sync runs.
package svn

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/svnstat/svnstat/internal/models"
)

// svn revision date syntax, always expressed in UTC.
const revDateFormat = "2006-01-02T15:04:05Z"

// Client invokes the svn command-line client to fetch raw log XML. Transport
// and authentication failures surface as opaque errors; the core never
// interprets them.
type Client struct {
	bin      string
	username string
	password string
	logger   *logrus.Logger
}

// ClientOption allows configuring the svn client
type ClientOption func(*Client)

// WithCredentials sets the username/password passed through to the svn
// client. They are never validated here.
func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithBinary overrides the svn executable path.
func WithBinary(bin string) ClientOption {
	return func(c *Client) {
		c.bin = bin
	}
}

// NewClient creates a new svn client with the given options
func NewClient(logger *logrus.Logger, opts ...ClientOption) *Client {
	c := &Client{
		bin:    "svn",
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Log fetches the raw XML log for a repository. A nil window means no date
// filter: pull all history. A non-nil window fetches only revisions inside
// {start}:{end}.
func (c *Client) Log(ctx context.Context, repoURL string, window *models.DateRange) ([]byte, error) {
	args := []string{"log", "--xml", "--non-interactive"}
	if c.username != "" {
		args = append(args, "--username", c.username)
	}
	if c.password != "" {
		args = append(args, "--password", c.password)
	}
	if window != nil {
		args = append(args, "-r", fmt.Sprintf("{%s}:{%s}",
			window.Start.UTC().Format(revDateFormat),
			window.End.UTC().Format(revDateFormat)))
	}
	args = append(args, repoURL)

	c.logger.WithFields(logrus.Fields{
		"repository": repoURL,
		"filtered":   window != nil,
	}).Debug("Invoking svn log")

	started := time.Now()
	cmd := exec.CommandContext(ctx, c.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("svn log failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}

	c.logger.WithFields(logrus.Fields{
		"repository": repoURL,
		"bytes":      stdout.Len(),
		"duration":   time.Since(started),
	}).Debug("svn log completed")

	return stdout.Bytes(), nil
}
