// Package kintone retrieves records from the kintone REST API.
package kintone

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	recordsPath = "/k/v1/records.json"
	tokenHeader = "X-Cybozu-API-Token"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds kintone client configuration
type Config struct {
	BaseURL  string // e.g. https://example.cybozu.com
	AppID    int64
	APIToken string
	Timeout  time.Duration
}

// Client reads records of one kintone app
type Client struct {
	baseURL    string
	appID      int64
	apiToken   string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new kintone client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appID:      cfg.AppID,
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// AppID returns the app the client reads
func (c *Client) AppID() int64 {
	return c.appID
}

func (c *Client) recordsURL() string {
	return c.baseURL + recordsPath
}
