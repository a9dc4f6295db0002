// Package gateway is the portal's client for the remote content gateway,
// the REST backend that owns all true application state. Every method is a
// single pass-through call; the gateway validates each operation and this
// package only shapes requests, decodes the response envelope and classifies
// failures.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ChienNQuang/nextuni-portal-api/pkg/config"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
)

// Session carries the upstream bearer token for one portal session. It is
// passed explicitly on every call; there is no ambient token storage. A zero
// Session issues unauthenticated requests, which the gateway may still
// accept for public resources.
type Session struct {
	Token string
}

// CallObserver receives timing for every gateway call. failureKind is the
// coarse error kind, empty on success.
type CallObserver func(method, path string, duration time.Duration, failureKind string)

// Client talks to the content gateway.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	validate *validator.Validate
	observe  CallObserver
}

// NewClient constructs a gateway client.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
		validate: validator.New(),
	}
}

// PageInfo mirrors the gateway's paged list metadata.
type PageInfo struct {
	PageNumber      int  `json:"pageNumber"`
	TotalPages      int  `json:"totalPages"`
	TotalCount      int  `json:"totalCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// envelope is the gateway's uniform response wrapper. A 2xx status with
// isSuccess=false still means the operation failed.
type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("pageNumber", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	return q
}

// SetObserver installs a per-call metrics hook.
func (c *Client) SetObserver(fn CallObserver) {
	c.observe = fn
}

// call performs one gateway request and decodes the envelope payload into
// out when out is non-nil.
func (c *Client) call(ctx context.Context, sess Session, method, path string, query url.Values, body interface{}, out interface{}) error {
	start := time.Now()
	err := c.do(ctx, sess, method, path, query, body, out)
	if c.observe != nil {
		var failureKind string
		if err != nil {
			failureKind = string(appErrors.KindOf(err))
		}
		c.observe(method, path, time.Since(start), failureKind)
	}
	return err
}

func (c *Client) do(ctx context.Context, sess Session, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode gateway request")
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("gateway unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrGatewayNetwork.Code, appErrors.ErrGatewayNetwork.Status, "content gateway unreachable")
	}
	defer resp.Body.Close()

	c.logger.Debug("gateway call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, "gateway rejected credentials")
	case resp.StatusCode == http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, "gateway denied access")
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return appErrors.Clone(appErrors.ErrGatewayRejected, fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGatewayMalformed.Code, appErrors.ErrGatewayMalformed.Status, "decode gateway envelope")
	}
	if !env.IsSuccess {
		msg := env.Message
		if msg == "" {
			msg = "content gateway rejected the operation"
		}
		return appErrors.Clone(appErrors.ErrGatewayRejected, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGatewayMalformed.Code, appErrors.ErrGatewayMalformed.Status, "decode gateway payload")
	}
	return nil
}

// checkWire validates a decoded wire struct so malformed gateway payloads
// fail fast instead of leaking zero values into the surfaces.
func (c *Client) checkWire(v interface{}) error {
	if err := c.validate.Struct(v); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGatewayMalformed.Code, appErrors.ErrGatewayMalformed.Status, "gateway payload failed validation")
	}
	return nil
}
