package billapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/application/port"
)

const maxErrorBody = 4 << 10

// quoteEscaper escapes a multipart header parameter the way mime/multipart does
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// Client implements port.BillStore against a remote store API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the store API served at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// List fetches every raw record
func (c *Client) List(ctx context.Context) ([]port.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/bills", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list request: %w", err)
	}

	var records []port.RawRecord
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []port.RawRecord{}
	}
	return records, nil
}

// Create uploads the proof as multipart form data
func (c *Client) Create(ctx context.Context, upload port.Upload) (*port.CreateResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(upload.File.Name)))
	header.Set("Content-Type", upload.File.Type)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(upload.File.Content); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.WriteField("email", upload.Email); err != nil {
		return nil, fmt.Errorf("failed to write email field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/bills", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result port.CreateResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update overwrites a record; an empty selector targets the collection
func (c *Client) Update(ctx context.Context, update port.UpdateRequest) error {
	payload, err := json.Marshal(struct {
		Data string `json:"data"`
	}{Data: update.Data})
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	endpoint := c.baseURL + "/v1/bills"
	if update.Selector != "" {
		endpoint += "/" + url.PathEscape(update.Selector)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, nil)
}

// do sends the request and decodes a 2xx JSON body into out.
// Transport failures and non-2xx answers become *port.StoreError.
func (c *Client) do(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Store request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return port.NewStoreError(port.ErrServer.Code, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Store request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return port.NewStoreError(resp.StatusCode, fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, strings.TrimSpace(string(msg))))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return port.NewStoreError(port.ErrServer.Code, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

var _ port.BillStore = (*Client)(nil)
