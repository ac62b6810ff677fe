package kintone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

// MockHTTPClient for testing transport failures
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func pageJSON(start, n int) string {
	var b strings.Builder
	b.WriteString(`{"records":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"seq":{"type":"NUMBER","value":"%d"}}`, start+i)
	}
	b.WriteString(`],"totalCount":null}`)
	return b.String()
}

// recordServer serves total records in pages and records each query it saw.
func recordServer(t *testing.T, total int, queries *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/k/v1/records.json", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Cybozu-API-Token"))
		assert.Equal(t, "262", r.URL.Query().Get("app"))

		q := r.URL.Query().Get("query")
		*queries = append(*queries, q)

		var limit, offset int
		idx := strings.Index(q, "limit ")
		if _, err := fmt.Sscanf(q[idx:], "limit %d offset %d", &limit, &offset); !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		n := total - offset
		if n > limit {
			n = limit
		}
		if n < 0 {
			n = 0
		}
		_, _ = io.WriteString(w, pageJSON(offset, n))
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL + "/", AppID: 262, APIToken: "secret"}, zap.NewNop())
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "limit 500 offset 0", BuildQuery("", 500, 0))
	assert.Equal(t, `status in ("done") limit 500 offset 1000`, BuildQuery(`status in ("done")`, 500, 1000))
}

func TestClient_FetchAll_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		wantRequests int
	}{
		{name: "empty app", total: 0, wantRequests: 1},
		{name: "single short page", total: 3, wantRequests: 1},
		{name: "several pages with short tail", total: 1234, wantRequests: 3},
		{name: "exact multiple needs one extra empty page", total: 1000, wantRequests: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var queries []string
			srv := recordServer(t, tt.total, &queries)
			defer srv.Close()

			records, err := newTestClient(srv.URL).FetchAll(context.Background(), "")
			require.NoError(t, err)

			assert.Len(t, records, tt.total)
			assert.Len(t, queries, tt.wantRequests)
			for i, rec := range records {
				assert.Equal(t, int64(i), rec.Get("seq").Int64Value(), "records must stay in arrival order")
			}
			for i, q := range queries {
				assert.Equal(t, fmt.Sprintf("limit 500 offset %d", i*PageSize), q)
			}
		})
	}
}

func TestClient_FetchAll_PassesFilter(t *testing.T) {
	var queries []string
	srv := recordServer(t, 2, &queries)
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAll(context.Background(), `invoice_no = "B111"`)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Equal(t, `invoice_no = "B111" limit 500 offset 0`, queries[0])
}

func TestClient_FetchAll_MissingRecordsKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = io.WriteString(w, pageJSON(0, PageSize))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"GAIA_IQ11","message":"invalid query"}`)
	}))
	defer srv.Close()

	records, err := newTestClient(srv.URL).FetchAll(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, records, "no partial result on a malformed page")
	assert.Equal(t, 2, calls, "no retry after a malformed page")

	var remoteErr *apperr.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.True(t, errors.Is(err, apperr.ErrRemote))
	assert.Contains(t, string(remoteErr.Payload), "GAIA_IQ11")
	assert.Equal(t, "limit 500 offset 500", remoteErr.Query)
}

func TestClient_FetchAll_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>maintenance</html>")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAll(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrRemote)
}

func TestClient_FetchAll_RecordsNotAnArray(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null", body: `{"records":null}`},
		{name: "object", body: `{"records":{"seq":1}}`},
		{name: "string", body: `{"records":"none"}`},
		{name: "number", body: `{"records":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			records, err := newTestClient(srv.URL).FetchAll(context.Background(), "")
			assert.Nil(t, records)

			var remoteErr *apperr.RemoteError
			require.True(t, errors.As(err, &remoteErr))
			assert.Equal(t, tt.body, string(remoteErr.Payload))
			assert.Equal(t, "limit 500 offset 0", remoteErr.Query)
		})
	}
}

func TestClient_FetchAll_TransportError(t *testing.T) {
	client := newTestClient("https://example.cybozu.com")
	client.httpClient = &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := client.FetchAll(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrRemote)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClient_FetchAll_DecodesTypedFields(t *testing.T) {
	client := newTestClient("https://example.cybozu.com")
	client.httpClient = &MockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			body := `{"records":[{"customer":{"type":"SINGLE_LINE_TEXT","value":"ACME"},"total":{"type":"CALC","value":"1100"}}]}`
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader([]byte(body))),
			}, nil
		},
	}

	records, err := client.FetchAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ACME", records[0].Get("customer").Raw())
	total, err := records[0].Get("total").Int()
	require.NoError(t, err)
	assert.Equal(t, int64(1100), total)
}
