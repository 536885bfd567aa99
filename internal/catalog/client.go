package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Fetcher defines the data source operations the UI depends on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]Record, error)
	ProbeImage(ctx context.Context, rawURL string) (ImageInfo, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL   = "https://json.medrating.org"
	DefaultTimeout   = 30 * time.Second
	DefaultProbeRate = 8.0
	defaultUserAgent = "gallery/0.1"
	maxImageHeader   = 1 << 20
)

// Hooks observe a fetch. Started fires before the request is issued,
// Finished only after a successful response has been decoded.
type Hooks struct {
	Started  func(requestID string, q Query)
	Finished func(requestID string, q Query)
}

// Query addresses one of the collection endpoints.
type Query struct {
	Kind     Kind
	Path     string
	RawQuery string
}

// String returns the query relative to the API base.
func (q Query) String() string {
	if q.RawQuery == "" {
		return q.Path
	}
	return q.Path + "?" + q.RawQuery
}

// UsersQuery lists all users.
func UsersQuery() Query {
	return Query{Kind: KindUser, Path: "/users/"}
}

// AlbumsQuery lists the albums of one user ("albums?userId=N").
func AlbumsQuery(user ID) Query {
	return Query{Kind: KindAlbum, Path: "/albums", RawQuery: user.String()}
}

// PhotosQuery lists the photos of one album ("photos?albumId=N").
func PhotosQuery(album ID) Query {
	return Query{Kind: KindPhoto, Path: "/photos", RawQuery: album.String()}
}

// PhotosByIDsQuery bulk-fetches photos from a repeated "id=N&" fragment.
func PhotosByIDsQuery(fragment string) Query {
	return Query{Kind: KindPhoto, Path: "/photos", RawQuery: fragment}
}

// PhotoQuery fetches a single photo ("photos?id=N").
func PhotoQuery(id int64) Query {
	return Query{Kind: KindPhoto, Path: "/photos", RawQuery: "id=" + strconv.FormatInt(id, 10)}
}

// Client talks to the gallery JSON API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	timeout   time.Duration
	hooks     Hooks
	limiter   *rate.Limiter
	logger    *log.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHooks installs fetch observers.
func WithHooks(h Hooks) Option {
	return func(c *Client) { c.hooks = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithProbeRate limits image probes to perSecond requests.
func WithProbeRate(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithHTTPClient swaps the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client for the API rooted at base.
func NewClient(base string, opts ...Option) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultProbeRate), 1),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Timeout reports the per-request bound.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Fetch retrieves the collection addressed by q.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rid := uuid.NewString()
	logger := c.logger.With("request", rid, "query", q.String())
	if c.hooks.Started != nil {
		c.hooks.Started(rid, q)
	}
	logger.Debug("fetch started")

	records, err := c.fetch(ctx, q, logger)
	if err != nil {
		logger.Warn("fetch failed", "err", err)
		return nil, err
	}
	logger.Debug("fetch finished", "records", len(records))
	if c.hooks.Finished != nil {
		c.hooks.Finished(rid, q)
	}
	return records, nil
}

func (c *Client) fetch(ctx context.Context, q Query, logger *log.Logger) ([]Record, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, q, &raw); err != nil {
		return nil, err
	}
	switch q.Kind {
	case KindUser:
		return decodeItems[User](raw, q, logger)
	case KindAlbum:
		return decodeItems[Album](raw, q, logger)
	case KindPhoto:
		return decodeItems[Photo](raw, q, logger)
	default:
		return nil, fmt.Errorf("unsupported query kind %d", q.Kind)
	}
}

// decodeItems decodes each element on its own. An element that does not
// decode, a non-numeric id for instance, is skipped and logged so the rest
// of the list still renders. The call fails only when every element is bad.
func decodeItems[T Record](raw []json.RawMessage, q Query, logger *log.Logger) ([]Record, error) {
	out := make([]Record, 0, len(raw))
	var firstErr error
	for i, item := range raw {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			logger.Warn("item skipped", "index", i, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 && firstErr != nil {
		return nil, &LoadError{Kind: ErrDecode, Message: "GET " + q.String(), Err: fmt.Errorf("decode response: %w", firstErr)}
	}
	return out, nil
}

// Users lists all users.
func (c *Client) Users(ctx context.Context) ([]Record, error) {
	return c.Fetch(ctx, UsersQuery())
}

// Albums lists the albums owned by user.
func (c *Client) Albums(ctx context.Context, user ID) ([]Record, error) {
	return c.Fetch(ctx, AlbumsQuery(user))
}

// Photos lists the photos of album.
func (c *Client) Photos(ctx context.Context, album ID) ([]Record, error) {
	return c.Fetch(ctx, PhotosQuery(album))
}

// PhotosByIDs bulk-fetches photos from a repeated "id=N&" fragment.
func (c *Client) PhotosByIDs(ctx context.Context, fragment string) ([]Record, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, fmt.Errorf("photo id fragment is empty")
	}
	return c.Fetch(ctx, PhotosByIDsQuery(fragment))
}

// Photo fetches a single photo by id.
func (c *Client) Photo(ctx context.Context, id int64) (Photo, error) {
	q := PhotoQuery(id)
	records, err := c.Fetch(ctx, q)
	if err != nil {
		return Photo{}, err
	}
	if len(records) == 0 {
		return Photo{}, &LoadError{Kind: ErrMissing, Message: "GET " + q.String(), Err: ErrNotFound}
	}
	return records[0].(Photo), nil
}

// ProbeImage loads the image at rawURL and reports its header. It is the
// completion signal for thumbnails and the full-size popup image.
func (c *Client) ProbeImage(ctx context.Context, rawURL string) (ImageInfo, error) {
	if c == nil {
		return ImageInfo{}, fmt.Errorf("client is nil")
	}
	message := "GET " + rawURL
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return ImageInfo{}, classifyTransport(message, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return ImageInfo{}, &LoadError{Kind: ErrNetwork, Message: message, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return ImageInfo{}, classifyTransport(message, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ImageInfo{}, &LoadError{Kind: ErrHTTPStatus, StatusCode: resp.StatusCode, Message: message}
	}
	cfg, format, err := image.DecodeConfig(io.LimitReader(resp.Body, maxImageHeader))
	if err != nil {
		return ImageInfo{}, &LoadError{Kind: ErrDecode, Message: message, Err: err}
	}
	return ImageInfo{URL: rawURL, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func (c *Client) getJSON(ctx context.Context, q Query, dest any) error {
	message := "GET " + q.String()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + q.Path
	reqURL.RawQuery = q.RawQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &LoadError{Kind: ErrNetwork, Message: message, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(message, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &LoadError{Kind: ErrHTTPStatus, StatusCode: resp.StatusCode, Message: message}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if ctx.Err() != nil {
			return classifyTransport(message, ctx.Err())
		}
		return &LoadError{Kind: ErrDecode, Message: message, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
