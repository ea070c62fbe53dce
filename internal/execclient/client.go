package execclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asynkron/codexterm/internal/logx"
)

// DefaultEndpoint is where the execution service listens unless configured.
const DefaultEndpoint = "http://localhost:5000/execute"

// TransportFailureMessage is shown when the service cannot be reached or
// returns something other than a well-formed answer.
const TransportFailureMessage = "Failed to execute code. Please make sure the Python backend server is running."

const maxResponseBytes = 8 << 20

var (
	// ErrUnexpectedStatus is the cause recorded for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status from execution endpoint")

	// ErrMalformedResponse is the cause recorded when the body is not a
	// usable {output}/{error} document.
	ErrMalformedResponse = errors.New("malformed execution response")
)

// Config configures a Client.
type Config struct {
	// Endpoint is the URL requests are POSTed to.
	// Default: DefaultEndpoint
	Endpoint string

	// Timeout bounds a single request. Zero leaves the request unbounded, so
	// a service that never answers keeps the caller waiting.
	Timeout time.Duration

	// HTTPClient overrides the client used for requests.
	HTTPClient *http.Client
}

// Client posts code to a remote execution endpoint.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

// New creates a Client with defaults applied.
func New(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		endpoint: endpoint,
		timeout:  cfg.Timeout,
		http:     httpClient,
	}
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute sends one request and maps the answer to a Result. A single attempt
// is made; retrying is left to the caller.
func (c *Client) Execute(ctx context.Context, req Request) Result {
	log := logx.WithRun(logx.Ctx(ctx), req.ID()).With("endpoint", c.endpoint)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(wireRequest{Code: req.Code()})
	if err != nil {
		return transportFailure(fmt.Errorf("encode request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		log.Warn("execute request invalid", "err", err)
		return transportFailure(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Warn("execute request failed", "err", err)
		return transportFailure(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		log.Warn("execute request rejected", "status", resp.StatusCode)
		return transportFailure(fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}

	var payload wireResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		log.Warn("execute response unreadable", "err", err)
		return transportFailure(fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}

	result := payload.result()
	log.Debug("execute request settled", "status", resp.StatusCode, "duration", time.Since(start).String())
	return result
}

var _ Executor = (*Client)(nil)

type wireRequest struct {
	Code string `json:"code"`
}

type wireResponse struct {
	Output *string `json:"output"`
	Error  *string `json:"error"`
}

func (w wireResponse) result() Result {
	if w.Error != nil && *w.Error != "" {
		return BackendError{Message: *w.Error}
	}
	if w.Output != nil {
		return Success{Output: *w.Output}
	}
	return transportFailure(fmt.Errorf("%w: neither output nor error present", ErrMalformedResponse))
}

func transportFailure(err error) TransportError {
	return TransportError{Message: TransportFailureMessage, Err: err}
}
