package kintone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
)

// PageSize is the number of records requested per call
const PageSize = 500

var (
	errMissingRecords  = errors.New(`response has no "records" field`)
	errRecordsNotArray = errors.New(`response "records" field is not an array`)
)

// BuildQuery returns the kintone query for one page. An empty filter
// yields just the paging clause.
func BuildQuery(filter string, limit, offset int) string {
	paging := fmt.Sprintf("limit %d offset %d", limit, offset)
	if filter == "" {
		return paging
	}
	return filter + " " + paging
}

// FetchAll retrieves every record matching filter, page by page, in the
// order the API returns them. It stops at the first page shorter than
// PageSize. A malformed page aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, filter string) ([]record.Record, error) {
	var all []record.Record
	offset := 0

	for {
		page, err := c.fetchPage(ctx, filter, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		c.logger.Debug("Fetched kintone page",
			zap.Int64("app", c.appID),
			zap.Int("offset", offset),
			zap.Int("count", len(page)))

		if len(page) < PageSize {
			break
		}
		offset += PageSize
	}

	c.logger.Info("Fetched kintone records",
		zap.Int64("app", c.appID),
		zap.Int("total", len(all)))

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, filter string, offset int) ([]record.Record, error) {
	query := BuildQuery(filter, PageSize, offset)

	params := url.Values{}
	params.Set("app", strconv.FormatInt(c.appID, 10))
	params.Set("query", query)
	endpoint := c.recordsURL() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(tokenHeader, c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to call kintone", zap.String("url", c.recordsURL()), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.remoteError(query, body, err)
	}
	raw, ok := envelope["records"]
	if !ok {
		return nil, c.remoteError(query, body, errMissingRecords)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, c.remoteError(query, body, errRecordsNotArray)
	}

	var records []record.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, c.remoteError(query, body, err)
	}
	return records, nil
}

// remoteError logs the offending request and response and wraps them.
func (c *Client) remoteError(query string, body []byte, cause error) error {
	c.logger.Error("kintone API returned an unexpected response",
		zap.String("url", c.recordsURL()),
		zap.Int64("app", c.appID),
		zap.String("query", query),
		zap.ByteString("response", body),
		zap.Error(cause))

	return &apperr.RemoteError{
		URL:     c.recordsURL(),
		Query:   query,
		Payload: body,
		Err:     cause,
	}
}
