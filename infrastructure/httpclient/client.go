/*
Package httpclient - the single HTTP client every resource API goes through

It owns everything the resource packages must not care about:

  - bearer token injection, read from an auth.TokenProvider on every request
  - retries with 2^attempt * base_delay backoff for transient failures
  - normalisation of every failure into one *errors.AppError
  - the 401 hook, request ids, idempotency keys and outgoing throttling

Only idempotent verbs retry on their own. POST and PATCH retry when the call
opts in with Retryable() or when api.retry.retry_non_idempotent is set; such
calls send one Idempotency-Key on every attempt.
*/
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"backoffice/config"
	"backoffice/domain/auth"
	"backoffice/infrastructure/retry"
	apperrors "backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// Config Client construction parameters
type Config struct {
	BaseURL            string
	Timeout            time.Duration
	UserAgent          string
	Retry              retry.Config
	RetryNonIdempotent bool
	RateLimit          config.RateLimitConfig
}

// ConfigFrom builds the client configuration from the application config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		BaseURL:            cfg.API.BaseURL,
		Timeout:            cfg.API.Timeout,
		UserAgent:          cfg.API.UserAgent,
		Retry:              retry.FromAppConfig(cfg),
		RetryNonIdempotent: cfg.API.Retry.RetryNonIdempotent,
		RateLimit:          cfg.API.RateLimit,
	}
}

// UnauthorizedHook is called with the request path when the backend answers 401.
type UnauthorizedHook func(ctx context.Context, path string)

// Client Shared API client
type Client struct {
	rc                 *resty.Client
	tokens             auth.TokenProvider
	retry              retry.Config
	retryNonIdempotent bool
	limiter            *rate.Limiter
	onUnauthorized     UnauthorizedHook
	trace              *logger.RestyLoggerAdapter
}

// Option configures a Client.
type Option func(*Client)

// WithTokenProvider sets where the bearer token is read from.
func WithTokenProvider(p auth.TokenProvider) Option {
	return func(c *Client) { c.tokens = p }
}

// WithUnauthorizedHook registers the 401 extension point. The request still fails.
func WithUnauthorizedHook(fn UnauthorizedHook) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		base := c.rc.BaseURL
		c.rc = resty.NewWithClient(hc).SetBaseURL(base)
	}
}

// WithRetrySleep replaces the backoff wait.
func WithRetrySleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.retry.Sleep = sleep }
}

func WithLogger(l *logger.RestyLoggerAdapter) Option {
	return func(c *Client) { c.trace = l }
}

// New builds a client. The token provider is consulted per request, never cached.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		rc:                 resty.New().SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		tokens:             auth.TokenProviderFunc(func() string { return "" }),
		retry:              cfg.Retry,
		retryNonIdempotent: cfg.RetryNonIdempotent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.trace == nil {
		c.trace = logger.NewRestyLoggerAdapter()
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Rate > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.Rate), burst)
	}

	c.rc.
		SetLogger(c.trace).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if cfg.Timeout > 0 {
		c.rc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		c.rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	c.rc.OnBeforeRequest(c.beforeRequest)

	return c
}

func (c *Client) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(r.Context()); err != nil {
			return err
		}
	}
	if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

// ============================================================================
// Per-call options
// ============================================================================

type callOptions struct {
	retryable bool
	headers   map[string]string
}

// CallOption tunes a single request.
type CallOption func(*callOptions)

// Retryable opts a POST or PATCH into retries; the attempts share one Idempotency-Key.
func Retryable() CallOption {
	return func(o *callOptions) { o.retryable = true }
}

func WithHeader(key, value string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// ============================================================================
// Verbs
// ============================================================================

func (c *Client) Get(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Upload sends r as the multipart form field named field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any, opts ...CallOption) error {
	// Buffered so an opted-in retry can resend the same bytes.
	data, err := io.ReadAll(r)
	if err != nil {
		return apperrors.Setup(err)
	}
	return c.execute(ctx, http.MethodPost, path, out, opts, func(req *resty.Request) {
		req.SetFileReader(field, filename, bytes.NewReader(data))
	})
}

// Do performs one logical call: method and path relative to the base URL,
// body marshalled as JSON when non-nil, response decoded into out when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error {
	return c.execute(ctx, method, path, out, opts, func(req *resty.Request) {
		if body != nil {
			req.SetBody(body)
		}
	})
}

func (c *Client) execute(ctx context.Context, method, path string, out any, opts []CallOption, build func(*resty.Request)) error {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}

	policy := c.retry
	idempotencyKey := ""
	if !isIdempotent(method) {
		if o.retryable || c.retryNonIdempotent {
			idempotencyKey = uuid.NewString()
		} else {
			policy.MaxRetries = 0
		}
	}
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.FromContext(ctx).Info("Retrying request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.String("error", apperrors.Message(err)),
		)
	}

	return retry.ExecuteWithRetry(ctx, policy, func(ctx context.Context, attempt int) error {
		req := c.rc.R().SetContext(ctx).SetHeader(HeaderRequestID, requestID)
		if idempotencyKey != "" {
			req.SetHeader(HeaderIdempotencyKey, idempotencyKey)
		}
		for k, v := range o.headers {
			req.SetHeader(k, v)
		}
		build(req)

		start := time.Now()
		resp, err := req.Execute(method, path)
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		if err != nil {
			err = normalizeSendError(err)
		} else {
			err = c.decode(ctx, path, resp, out)
		}

		c.trace.Trace(ctx, logger.RequestTrace{
			Method:  method,
			Path:    path,
			Status:  status,
			Attempt: attempt,
			Elapsed: time.Since(start),
			Err:     err,
		})
		return err
	})
}

// outcome is satisfied by shared.Envelope so success=false on 2xx can be detected.
type outcome interface {
	Succeeded() bool
	Msg() string
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) decode(ctx context.Context, path string, resp *resty.Response, out any) error {
	status := resp.StatusCode()
	if status < 200 || status > 299 {
		var body errorBody
		_ = json.Unmarshal(resp.Body(), &body)
		if status == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized(ctx, path)
		}
		return apperrors.Server(status, body.Message)
	}

	if out == nil || len(bytes.TrimSpace(resp.Body())) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperrors.Wrap(err, apperrors.CodeServer, "malformed response from server")
	}
	if env, ok := out.(outcome); ok && !env.Succeeded() {
		return apperrors.Server(status, env.Msg())
	}
	return nil
}

// normalizeSendError splits "sent but nothing came back" from "never sent".
func normalizeSendError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Op != "parse" {
		return apperrors.Transport(err)
	}
	return apperrors.Setup(err)
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}
