// Package gateway is the typed transport between the chat client and the
// backend: request/response with per-class timeouts and failure
// classification.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Crimsonfv/ChatIA-Frond/internal/auth"
	"github.com/Crimsonfv/ChatIA-Frond/internal/config"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/logger"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/metrics"
)

// TimeoutClass selects the time budget for a call.
type TimeoutClass int

const (
	// Fast covers reads and lists.
	Fast TimeoutClass = iota
	// Standard covers writes and single-resource reads.
	Standard
	// Extended covers chat sends, which wait on backend analytics.
	Extended
)

// Client is the HTTP gateway to the chat backend. It attaches the cached
// bearer credential, enforces the per-class timeout, classifies failures and
// clears the credential on an unauthorized response.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *auth.CredentialStore
	logger  *logger.Logger
	tracer  trace.Tracer

	fastTimeout     time.Duration
	standardTimeout time.Duration
	extendedTimeout time.Duration

	readRetryMax     int
	readRetryBackoff time.Duration
}

// New creates a gateway client.
func New(cfg *config.Config, creds *auth.CredentialStore, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Global()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// Per-call deadlines come from the timeout class; the transport
		// itself stays unbounded.
		http:             &http.Client{},
		creds:            creds,
		logger:           log,
		tracer:           otel.Tracer("chat-gateway"),
		fastTimeout:      cfg.FastTimeout,
		standardTimeout:  cfg.StandardTimeout,
		extendedTimeout:  cfg.ExtendedTimeout,
		readRetryMax:     cfg.ReadRetryMax,
		readRetryBackoff: cfg.ReadRetryBackoff,
	}
}

func (c *Client) budget(class TimeoutClass) time.Duration {
	switch class {
	case Fast:
		return c.fastTimeout
	case Extended:
		return c.extendedTimeout
	default:
		return c.standardTimeout
	}
}

// call performs one request within the class's time budget and decodes the
// response into out when non-nil. Fast-class GETs are retried a bounded
// number of times on connection failure; nothing else is ever retried.
func (c *Client) call(ctx context.Context, operation, method, path string, query url.Values, payload, out any, class TimeoutClass) error {
	if method == http.MethodGet && class == Fast && c.readRetryMax > 0 {
		policy := backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(c.readRetryBackoff), uint64(c.readRetryMax)),
			ctx,
		)
		return backoff.Retry(func() error {
			err := c.doOnce(ctx, operation, method, path, query, payload, out, class)
			if err != nil && !IsKind(err, KindNetworkUnreachable) {
				return backoff.Permanent(err)
			}
			return err
		}, policy)
	}
	return c.doOnce(ctx, operation, method, path, query, payload, out, class)
}

func (c *Client) doOnce(ctx context.Context, operation, method, path string, query url.Values, payload, out any, class TimeoutClass) error {
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "gateway."+operation,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.budget(class))
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-ID", uuid.Must(uuid.NewV7()).String())
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		gerr := classifyTransport(operation, err)
		c.finish(span, operation, string(gerr.Kind), start)
		c.logger.Warn("gateway request failed",
			zap.String("operation", operation),
			zap.String("kind", string(gerr.Kind)),
			zap.Error(err),
		)
		return gerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		gerr := classifyTransport(operation, err)
		c.finish(span, operation, string(gerr.Kind), start)
		return gerr
	}

	if resp.StatusCode >= 400 {
		gerr := classifyStatus(operation, resp.StatusCode, data)
		if gerr.Kind == KindUnauthorized {
			// The credential is gone; clearing the store signals every
			// subscriber (the session controller included) to reset.
			c.creds.Clear()
		}
		c.finish(span, operation, string(gerr.Kind), start)
		c.logger.Warn("gateway request rejected",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(gerr.Kind)),
		)
		return gerr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.finish(span, operation, "decode_error", start)
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
	}

	c.finish(span, operation, "success", start)
	return nil
}

func (c *Client) finish(span trace.Span, operation, outcome string, start time.Time) {
	if outcome != "success" {
		span.SetStatus(codes.Error, outcome)
	}
	span.SetAttributes(attribute.String("gateway.outcome", outcome))
	metrics.RecordGatewayRequest(operation, outcome, time.Since(start).Seconds())
}
