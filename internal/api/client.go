package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PRINCE-ai19/AppDoCongNghe-sub000/internal/models"
	"github.com/shopspring/decimal"
)

func init() {
	// The backend binds numbers, not numeric strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const timeoutMessage = "Máy chủ phản hồi quá lâu, vui lòng thử lại."

type tokenKey struct{}

// WithToken attaches the bearer token used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx, if any.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client is the single pre-configured HTTP client for the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     slog.Default().With("component", "api"),
	}
}

// request describes one backend call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        any
	contentType string
	rawBody     io.Reader
}

// send performs the call and normalises whatever comes back. It never fails;
// every error path collapses into an unsuccessful Result.
func (c *Client) send(ctx context.Context, req request) Result[json.RawMessage] {
	start := time.Now()
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := "application/json"
	switch {
	case req.rawBody != nil:
		body = req.rawBody
		contentType = req.contentType
	case req.body != nil:
		payload, err := json.Marshal(req.body)
		if err != nil {
			c.log.Error("Failed to encode request body", "path", req.path, "error", err)
			return Failed[json.RawMessage]("")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		c.log.Error("Failed to build request", "path", req.path, "error", err)
		return Failed[json.RawMessage]("")
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("Backend unreachable", "method", req.method, "path", req.path, "duration", time.Since(start), "error", err)
		return Failed[json.RawMessage](transportMessage(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("Failed to read backend response", "method", req.method, "path", req.path, "status", resp.StatusCode, "error", err)
		return Failed[json.RawMessage](transportMessage(err))
	}

	c.log.Debug("Backend call",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res := Failed[json.RawMessage](errorMessage(raw))
		if norm := Normalize(raw); len(norm.FieldErrors) > 0 {
			res.FieldErrors = norm.FieldErrors
		}
		return res
	}

	// 204 and other bodyless successes carry no envelope.
	if len(bytes.TrimSpace(raw)) == 0 {
		return Result[json.RawMessage]{Success: true}
	}
	res := Normalize(raw)
	if !res.Success && res.Message == "" {
		res.Message = DefaultErrorMessage
	}
	return res
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return timeoutMessage
	}
	return DefaultErrorMessage
}

func call[T any](ctx context.Context, c *Client, req request) Result[T] {
	return decodeData[T](c.send(ctx, req))
}

func callPage[T any](ctx context.Context, c *Client, req request, page, pageSize int) Result[models.Page[T]] {
	return decodePage[T](c.send(ctx, req), page, pageSize)
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("pageSize", fmt.Sprint(pageSize))
	return q
}

func resource(name string, parts ...any) string {
	var b strings.Builder
	b.WriteString("/api/")
	b.WriteString(name)
	for _, p := range parts {
		b.WriteString("/")
		b.WriteString(url.PathEscape(fmt.Sprint(p)))
	}
	return b.String()
}
