package transport

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/pkg/httpcontext"
	appLogger "github.com/cantina/adminctl/pkg/logger"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "https://cantina-membership-app.vercel.app"

// TokenSource yields the bearer token attached to outbound requests. An
// empty token means the Authorization header is omitted entirely.
type TokenSource interface {
	Token() string
}

// Options carries optional per-request settings.
type Options struct {
	Params  map[string]string
	Headers map[string]string
}

// Caller is the subset of Client the domain services depend on.
type Caller interface {
	Get(ctx context.Context, endpoint string, opts *Options) Result
	Post(ctx context.Context, endpoint string, body interface{}, opts *Options) Result
	Put(ctx context.Context, endpoint string, body interface{}, opts *Options) Result
	Patch(ctx context.Context, endpoint string, body interface{}, opts *Options) Result
	Delete(ctx context.Context, endpoint string, opts *Options) Result
	PostForm(ctx context.Context, endpoint string, form *Form) Result
}

// Client is the single chokepoint for outbound requests. It hides the
// remote RPC envelope from the rest of the system: every call resolves to
// a Result, including transport failures. Callers never see an exception
// from this boundary.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	tokens  TokenSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient builds a transport client for the given base URL. tokens may
// be nil for unauthenticated use.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		tokens:  tokens,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *Client) Get(ctx context.Context, endpoint string, opts *Options) Result {
	return c.do(ctx, fasthttp.MethodGet, endpoint, nil, "", opts)
}

func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, opts *Options) Result {
	payload, result, ok := encodeBody(body)
	if !ok {
		return result
	}
	return c.do(ctx, fasthttp.MethodPost, endpoint, payload, "application/json", opts)
}

func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, opts *Options) Result {
	payload, result, ok := encodeBody(body)
	if !ok {
		return result
	}
	return c.do(ctx, fasthttp.MethodPut, endpoint, payload, "application/json", opts)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body interface{}, opts *Options) Result {
	payload, result, ok := encodeBody(body)
	if !ok {
		return result
	}
	return c.do(ctx, fasthttp.MethodPatch, endpoint, payload, "application/json", opts)
}

func (c *Client) Delete(ctx context.Context, endpoint string, opts *Options) Result {
	return c.do(ctx, fasthttp.MethodDelete, endpoint, nil, "", opts)
}

// PostForm sends a multipart form, used by the binary upload paths. The
// Content-Type carries the encoder's boundary.
func (c *Client) PostForm(ctx context.Context, endpoint string, form *Form) Result {
	body, contentType, err := form.Encode()
	if err != nil {
		return Failure("failed to encode form: " + err.Error())
	}
	return c.do(ctx, fasthttp.MethodPost, endpoint, body, contentType, nil)
}

// encodeBody serializes a JSON request body. Serialization failures are the
// one local bug this boundary can hit before a request exists; they still
// surface as a failure result, not a panic.
func encodeBody(body interface{}) ([]byte, Result, bool) {
	if body == nil {
		return nil, Result{}, true
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, Failure("failed to encode request body: " + err.Error()), false
	}
	return payload, Result{}, true
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, contentType string, o *Options) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Failure(err.Error())
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + endpoint)
	req.Header.SetMethod(method)

	if o != nil {
		for key, value := range o.Params {
			req.URI().QueryArgs().Set(key, value)
		}
	}

	if contentType != "" {
		req.Header.SetContentType(contentType)
	} else if method != fasthttp.MethodGet && method != fasthttp.MethodDelete {
		req.Header.SetContentType("application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
		}
	}
	if reqID := httpcontext.RequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	if o != nil {
		for key, value := range o.Headers {
			req.Header.Set(key, value)
		}
	}
	if len(body) > 0 {
		req.SetBody(body)
	}

	log := appLogger.WithRequestID(ctx, c.logger)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		log.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		msg := err.Error()
		if msg == "" {
			msg = "Network error occurred"
		}
		return Failure(msg)
	}

	result := c.normalize(resp)
	if !result.Success {
		log.Warn("request returned error",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", result.StatusCode),
			zap.String("error", result.Err))
	} else {
		log.Debug("request completed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", result.StatusCode))
	}
	return result
}

// normalize classifies the response by declared content type, decodes it,
// and folds it into the uniform Result shape.
func (c *Client) normalize(resp *fasthttp.Response) Result {
	status := resp.StatusCode()
	contentType := string(resp.Header.ContentType())
	isJSON := strings.Contains(contentType, "application/json")
	raw := resp.Body()

	var body interface{}
	if isJSON {
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &body); err != nil {
				return Result{
					Success:    false,
					StatusCode: status,
					Err:        "Failed to parse response",
					Message:    "Failed to parse response",
				}
			}
		}
	} else {
		body = string(raw)
	}

	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		msg := extractError(isJSON, body, status)
		return Result{
			Success:    false,
			StatusCode: status,
			Err:        msg,
			Message:    msg,
		}
	}

	return Result{
		Success:    true,
		StatusCode: status,
		Data:       unwrapData(body),
		Message:    extractMessage(body),
	}
}
