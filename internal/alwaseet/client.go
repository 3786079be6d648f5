package alwaseet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Checker-Finance/alwaseet-adapter/internal/auth"
	"github.com/Checker-Finance/alwaseet-adapter/internal/httpclient"
	"github.com/Checker-Finance/alwaseet-adapter/internal/metrics"
	"github.com/Checker-Finance/alwaseet-adapter/internal/rate"
)

// DefaultTimeout bounds every upstream call when none is configured.
const DefaultTimeout = 10 * time.Second

// Client wraps low-level HTTP communication with the Al-Waseet merchant API.
// It is stateless apart from the shared rate limiter; tokens are supplied per call.
type Client struct {
	logger  *zap.Logger
	exec    *httpclient.Executor
	baseURL string
	timeout time.Duration
}

// NewClient constructs a client for baseURL (e.g. https://api.alwaseet-iq.net/v1/merchant).
// rateMgr may be nil to disable outbound limiting.
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		logger:  logger,
		exec:    httpclient.New(logger, rateMgr, httpClient, "alwaseet"),
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Login exchanges merchant credentials for a bearer token.
// POST /login (form-encoded username, password)
func (c *Client) Login(ctx context.Context, creds auth.Credentials) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", loginUnreachable(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	var env Envelope
	err = c.exec.DoJSON(ctx, req, creds.Key(), &env)
	metrics.ObserveDuration(metrics.AlwaseetRequestDuration, start, loginPath, http.MethodPost)
	if err != nil {
		metrics.IncAlwaseetRequest(loginPath, http.MethodPost, "unreachable")
		return "", loginUnreachable(err)
	}

	token := env.token()
	if !env.Status || token == "" {
		metrics.IncAlwaseetRequest(loginPath, http.MethodPost, "auth_failed")
		c.logger.Warn("alwaseet.login_rejected", zap.String("msg", string(env.Msg)))
		return "", authFailed(string(env.Msg))
	}

	metrics.IncAlwaseetRequest(loginPath, http.MethodPost, "ok")
	return token, nil
}

// Cities lists the cities the merchant can ship to.
// GET /citys?token=
func (c *Client) Cities(ctx context.Context, account, token string) (json.RawMessage, error) {
	return c.fetch(ctx, Cities, account, token, nil)
}

// Regions lists the regions of a city. cityID is forwarded unvalidated.
// GET /regions?token=&city_id=
func (c *Client) Regions(ctx context.Context, account, token string, cityID int) (json.RawMessage, error) {
	return c.fetch(ctx, Regions, account, token, url.Values{"city_id": {strconv.Itoa(cityID)}})
}

// PackageSizes lists the package size options.
// GET /package-sizes?token=
func (c *Client) PackageSizes(ctx context.Context, account, token string) (json.RawMessage, error) {
	return c.fetch(ctx, PackageSizes, account, token, nil)
}

// fetch performs an authenticated lookup and returns the envelope data untouched.
// account scopes the rate limiter.
func (c *Client) fetch(ctx context.Context, res Resource, account, token string, params url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("token", token)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+res.Path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fetchUnreachable(res, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	var env Envelope
	err = c.exec.DoJSON(ctx, req, account, &env)
	metrics.ObserveDuration(metrics.AlwaseetRequestDuration, start, res.Path, http.MethodGet)
	if err != nil {
		metrics.IncAlwaseetRequest(res.Path, http.MethodGet, "unreachable")
		return nil, fetchUnreachable(res, err)
	}

	if !env.Status {
		metrics.IncAlwaseetRequest(res.Path, http.MethodGet, "rejected")
		c.logger.Warn("alwaseet.fetch_rejected",
			zap.String("resource", res.Name),
			zap.String("msg", string(env.Msg)))
		return nil, fetchRejected(res, string(env.Msg))
	}

	metrics.IncAlwaseetRequest(res.Path, http.MethodGet, "ok")
	return env.payload(), nil
}
