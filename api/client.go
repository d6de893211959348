// Package api is the REST client for the storefront backend. Every endpoint
// answers with the {success, data, pagination?, message?, code?} envelope; failures
// of any kind come back as *Error.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 10 * time.Second
)

// Client talks to the backend under baseURL (which already ends in /api).
type Client struct {
	baseURL       string
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *logrus.Entry
	sessionCookie string
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit throttles outbound calls to perSecond requests. Zero disables it.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		}
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.WithField("component", "api")
		}
	}
}

// WithSessionCookie forwards a raw Cookie header so the cart endpoints see a
// logged-in user.
func WithSessionCookie(cookie string) Option {
	return func(c *Client) { c.sessionCookie = cookie }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     discard.WithField("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// do performs one call and returns the decoded envelope of a successful answer.
// fallback is the message used when a success=false body carries none.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, fallback string) (*envelope, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, transportError(err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.sessionCookie != "" {
		req.Header.Set("Cookie", c.sessionCookie)
	}

	log := c.logger.WithFields(logrus.Fields{"method": method, "path": path, "request_id": reqID})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, &Error{Kind: KindTransport, Message: "request timed out", Err: err}
		}
		return nil, transportError(err)
	}
	defer resp.Body.Close()
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "took": time.Since(start).String()})

	// Error bodies may be empty (404 on a missing product) or non-JSON.
	env, decodeErr := decodeEnvelope(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("unexpected status")
		return nil, statusError(resp.StatusCode, env)
	}
	if decodeErr != nil {
		log.WithError(decodeErr).Warn("invalid response body")
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Message: "invalid response from server", Err: decodeErr}
	}
	if !env.Success {
		log.WithField("message", env.Message).Info("request rejected")
		return nil, applicationError(resp.StatusCode, env, fallback)
	}
	log.Debug("request ok")
	return env, nil
}
