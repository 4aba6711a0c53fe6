// SPDX-License-Identifier: GPL-2.0-or-later

// Package fetch loads cursor sources from HTTP, data URLs and local files.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"anicursor/anierr"
	"anicursor/filesystem"
	"anicursor/image"
)

// Fetcher returns the raw bytes of a source.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// Func adapts a function to Fetcher.
type Func func(ctx context.Context, src string) ([]byte, error)

func (f Func) Fetch(ctx context.Context, src string) ([]byte, error) {
	return f(ctx, src)
}

var _ Fetcher = (*Client)(nil)

const (
	DefaultUserAgent = "anicursor/0.1"
	DefaultTimeout   = 10 * time.Second
	// MaxSize bounds a single download.
	MaxSize = 16 << 20
)

type Client struct {
	http      *http.Client
	userAgent string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

func (c *Client) SetUserAgent(ua string) {
	if ua = strings.TrimSpace(ua); ua != "" {
		c.userAgent = ua
	}
}

func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Fetch resolves src. Relative paths are looked up through filesystem so
// theme directories apply, absolute ones are read directly.
func (c *Client) Fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case IsURL(src):
		return c.get(ctx, src)
	case image.IsDataURL(src):
		_, b, err := image.ParseDataURL(src)
		if err != nil {
			return nil, anierr.Wrap(anierr.InvalidInput, err, "source")
		}
		return b, nil
	case src == "":
		return nil, anierr.New(anierr.InvalidInput, "empty source")
	}
	var b []byte
	var err error
	if filepath.IsAbs(src) {
		b, err = os.ReadFile(src)
	} else {
		b, err = filesystem.ReadFile(src)
	}
	if err != nil {
		return nil, anierr.Wrap(anierr.NetworkError, err, "read %s", src)
	}
	return b, nil
}

func (c *Client) get(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, anierr.Wrap(anierr.InvalidInput, err, "create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, anierr.Wrap(anierr.NetworkError, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, anierr.New(anierr.NetworkError, "%s returned status %d", src, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, anierr.Wrap(anierr.NetworkError, err, "read body")
	}
	if len(b) > MaxSize {
		return nil, anierr.New(anierr.NetworkError, "%s is larger than %d bytes", src, MaxSize)
	}
	return b, nil
}
