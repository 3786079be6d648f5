package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/rate"
)

// maxBodyBytes caps how much of an upstream response is read into memory.
const maxBodyBytes = 8 << 20

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Tag        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.Tag, e.StatusCode, http.StatusText(e.StatusCode))
}

// Executor performs rate-limited, single-attempt HTTP calls with JSON decoding.
// Failures are returned to the caller as-is; nothing is retried.
type Executor struct {
	logger  *zap.Logger
	rateMgr *rate.Manager
	http    *http.Client
	tag     string
}

// New creates an Executor. tag prefixes log events (e.g. "alwaseet.http_failed").
func New(logger *zap.Logger, rateMgr *rate.Manager, httpClient *http.Client, tag string) *Executor {
	return &Executor{
		logger:  logger,
		rateMgr: rateMgr,
		http:    httpClient,
		tag:     tag,
	}
}

// DoJSON executes req once, then JSON-decodes the response into out.
// rateLimitKey scopes the rate limiter per upstream account.
func (e *Executor) DoJSON(ctx context.Context, req *http.Request, rateLimitKey string, out any) error {
	if err := e.rateMgr.Wait(ctx, rateLimitKey); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := e.http.Do(req.WithContext(ctx))
	if err != nil {
		redactURL(err)
		e.logger.Warn(e.tag+".http_failed",
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return fmt.Errorf("%s request failed: %w", e.tag, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s read body: %w", e.tag, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.logger.Warn(e.tag+".bad_status",
			zap.Int("status", resp.StatusCode),
			zap.String("path", req.URL.Path),
			zap.Duration("latency", elapsed))
		return &StatusError{Tag: e.tag, StatusCode: resp.StatusCode, Body: body}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			e.logger.Warn(e.tag+".decode_failed",
				zap.Error(err),
				zap.String("path", req.URL.Path),
				zap.Int("bytes", len(body)))
			return fmt.Errorf("decode failed: %w", err)
		}
	}

	e.logger.Debug(e.tag+".http_success",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return nil
}

// redactURL drops the query string from a *url.Error so tokens passed as
// query parameters never reach logs or callers.
func redactURL(err error) {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return
	}
	if u, perr := url.Parse(uerr.URL); perr == nil && u.RawQuery != "" {
		u.RawQuery = ""
		uerr.URL = u.String()
	}
}
