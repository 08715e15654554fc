package database

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const livenessProbeSQL = "SELECT SERVER_VERSION()"

// restClient talks to the TDengine REST interface (taosAdapter, default port
// 6041). One statement per POST to /rest/sql/{db}; responses come back in
// either the v2 shape (status/head/column_meta/data/rows) or the v3 shape
// (code/column_meta/data/rows), both of which normalize into TabularResult.
type restClient struct {
	baseURL   string
	authToken string
	database  string
	http      *http.Client
}

// RESTDialer returns a Dialer opening REST connections. Each connection owns
// its http.Client so that the pool's single-ownership guarantee also bounds
// in-flight requests per connection.
func RESTDialer() Dialer {
	return func(cfg EnvironmentConfig) (Client, error) {
		if cfg.Host == "" {
			return nil, fmt.Errorf("environment %q has no host", cfg.Name)
		}
		token := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
		return &restClient{
			baseURL:   fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port),
			authToken: token,
			database:  cfg.Database,
			http: &http.Client{
				// Statement timeouts are enforced per request through the
				// context; this is a hard backstop for hung transports.
				Timeout: cfg.Timeout + 5*time.Second,
			},
		}, nil
	}
}

// restResponse is the union of the v2 and v3 REST payloads.
type restResponse struct {
	Status     string       `json:"status"`
	Code       int          `json:"code"`
	Desc       string       `json:"desc"`
	Head       []string     `json:"head"`
	ColumnMeta []ColumnMeta `json:"column_meta"`
	Data       [][]any      `json:"data"`
	Rows       int          `json:"rows"`
}

func (c *restClient) Query(ctx context.Context, db, sql string) (*TabularResult, error) {
	if db == "" {
		db = c.database
	}
	endpoint := c.baseURL + "/rest/sql"
	if db != "" {
		endpoint += "/" + url.PathEscape(db)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(sql))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed restResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed response (HTTP %d): %w", resp.StatusCode, err)
	}

	// v3 reports errors via a non-zero code, v2 via status != "succ". Either
	// way the database's own message is preserved verbatim.
	if parsed.Code != 0 || (parsed.Status != "" && parsed.Status != "succ") {
		desc := parsed.Desc
		if desc == "" {
			desc = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, NewError(KindExecutionError, "%s", desc)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(KindExecutionError, "HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return normalizeRESTResponse(&parsed), nil
}

func (c *restClient) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "", livenessProbeSQL)
	return err
}

func (c *restClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// normalizeRESTResponse folds the v2/v3 variants into the canonical shape.
// v3 drops the status and head fields; both are reconstructed so every
// caller sees one result type.
func normalizeRESTResponse(r *restResponse) *TabularResult {
	head := r.Head
	if len(head) == 0 {
		head = make([]string, 0, len(r.ColumnMeta))
		for _, col := range r.ColumnMeta {
			head = append(head, col.Name)
		}
	}
	status := r.Status
	if status == "" {
		status = "succ"
	}
	data := r.Data
	if data == nil {
		data = [][]any{}
	}
	return &TabularResult{
		Status:     status,
		Head:       head,
		ColumnMeta: r.ColumnMeta,
		Data:       data,
		Rows:       len(data),
	}
}
