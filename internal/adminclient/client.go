// Package adminclient is a typed HTTP client for the consultation API.
package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/consultadmin/internal/app/system/apperr"
	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one API call when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// ListQuery selects one page of a role's consultations.
type ListQuery struct {
	Role  models.Role
	Page  int
	Limit int    // 0: server default
	Q     string // blank: no filter
}

// Page is one page of list results.
type Page struct {
	Items []models.Record
	Total int64
	Page  int
	Limit int
}

// Client calls the list, detail and delete endpoints.
type Client struct {
	base *url.URL
	hc   *http.Client
	log  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("adminclient: bad base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("adminclient: base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		base: u,
		hc:   &http.Client{Timeout: DefaultTimeout},
		log:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type listBody struct {
	Items []json.RawMessage `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type detailBody struct {
	Item json.RawMessage `json:"item"`
}

type errorBody struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// List fetches one page.
func (c *Client) List(ctx context.Context, q ListQuery) (Page, error) {
	v := url.Values{}
	v.Set("role", q.Role.String())
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}

	var body listBody
	if err := c.do(ctx, http.MethodGet, "list", v, &body); err != nil {
		return Page{}, err
	}

	items := make([]models.Record, 0, len(body.Items))
	for _, raw := range body.Items {
		rec, err := models.DecodeRecord(q.Role, raw)
		if err != nil {
			return Page{}, fmt.Errorf("adminclient: decode item: %w", err)
		}
		items = append(items, rec)
	}
	return Page{Items: items, Total: body.Total, Page: body.Page, Limit: body.Limit}, nil
}

// Detail fetches one record. A missing record is an apperr not-found error.
func (c *Client) Detail(ctx context.Context, role models.Role, id string) (models.Record, error) {
	v := url.Values{}
	v.Set("role", role.String())
	v.Set("id", id)

	var body detailBody
	if err := c.do(ctx, http.MethodGet, "detail", v, &body); err != nil {
		return models.Record{}, err
	}
	rec, err := models.DecodeRecord(role, body.Item)
	if err != nil {
		return models.Record{}, fmt.Errorf("adminclient: decode item: %w", err)
	}
	return rec, nil
}

// Delete removes one record.
func (c *Client) Delete(ctx context.Context, role models.Role, id string) error {
	v := url.Values{}
	v.Set("role", role.String())
	v.Set("id", id)
	return c.do(ctx, http.MethodDelete, "delete", v, nil)
}

func (c *Client) endpoint(name string, v url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/consultation/" + name
	u.RawQuery = v.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method, name string, v url.Values, out any) error {
	endpoint := c.endpoint(name, v)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		return apperr.Infrastructure("server unreachable", err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return apperr.Infrastructure("read response", err)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("endpoint", name),
		zap.Int("status", res.StatusCode),
		zap.String("request_id", res.Header.Get(requestid.Header)),
		zap.Duration("took", time.Since(start)))

	if res.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return apperr.FromStatus(res.StatusCode, eb.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperr.Infrastructure("malformed response", err)
	}
	return nil
}
