package rolloffapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/RollOff/internal/models"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// UpdatedByHeader carries the operator name for the updated_by audit field.
	UpdatedByHeader = "X-Updated-By"

	maxErrorBody = 64 << 10
)

type Client struct {
	baseURL  string
	operator string
	httpc    *http.Client
}

func New(baseURL, operator string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		operator: operator,
		httpc: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) ListContainers(ctx context.Context) ([]models.Container, error) {
	return do[[]models.Container](ctx, c, "list containers", http.MethodGet, "/containers", nil)
}

func (c *Client) GetContainer(ctx context.Context, id string) (models.Container, error) {
	return do[models.Container](ctx, c, "get container", http.MethodGet, "/containers/"+url.PathEscape(id), nil)
}

func (c *Client) CreateContainer(ctx context.Context, in models.Container) (models.Container, error) {
	return do[models.Container](ctx, c, "create container", http.MethodPost, "/containers", in)
}

func (c *Client) UpdateContainer(ctx context.Context, id string, in models.Container) (models.Container, error) {
	return do[models.Container](ctx, c, "update container", http.MethodPut, "/containers/"+url.PathEscape(id), in)
}

func (c *Client) DeleteContainer(ctx context.Context, id string) (models.Container, error) {
	return do[models.Container](ctx, c, "delete container", http.MethodDelete, "/containers/"+url.PathEscape(id), nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return do[[]models.Customer](ctx, c, "list customers", http.MethodGet, "/customers", nil)
}

func (c *Client) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	return do[models.Customer](ctx, c, "get customer", http.MethodGet, "/customers/"+itoa(id), nil)
}

func (c *Client) CreateCustomer(ctx context.Context, d models.CustomerDraft) (models.Customer, error) {
	return do[models.Customer](ctx, c, "create customer", http.MethodPost, "/customers", d)
}

func (c *Client) UpdateCustomer(ctx context.Context, id int64, d models.CustomerDraft) (models.Customer, error) {
	return do[models.Customer](ctx, c, "update customer", http.MethodPut, "/customers/"+itoa(id), d)
}

func (c *Client) DeleteCustomer(ctx context.Context, id int64) (models.Customer, error) {
	return do[models.Customer](ctx, c, "delete customer", http.MethodDelete, "/customers/"+itoa(id), nil)
}

func (c *Client) SearchCustomers(ctx context.Context, name string) ([]models.Customer, error) {
	return do[[]models.Customer](ctx, c, "search customers", http.MethodGet, "/customers/search/"+url.PathEscape(name), nil)
}

func (c *Client) ListLogEntries(ctx context.Context) ([]models.LogEntry, error) {
	return do[[]models.LogEntry](ctx, c, "list log entries", http.MethodGet, "/log-entries", nil)
}

func (c *Client) CreateLogEntry(ctx context.Context, d models.LogEntryDraft) (models.LogEntry, error) {
	return do[models.LogEntry](ctx, c, "create log entry", http.MethodPost, "/log-entries", d)
}

func (c *Client) ListContainerLogEntries(ctx context.Context, containerID string) ([]models.LogEntry, error) {
	return do[[]models.LogEntry](ctx, c, "list container log entries", http.MethodGet, "/log-entries/container/"+url.PathEscape(containerID), nil)
}

func (c *Client) ListCustomerLogEntries(ctx context.Context, customerID int64) ([]models.LogEntry, error) {
	return do[[]models.LogEntry](ctx, c, "list customer log entries", http.MethodGet, "/log-entries/customer/"+itoa(customerID), nil)
}

func do[T any](ctx context.Context, c *Client, op, method, path string, body any) (T, error) {
	var out T

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return out, TransportError(op, errors.Wrap(err, "encode body"))
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return out, TransportError(op, errors.Wrap(err, "new request"))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.operator != "" {
		req.Header.Set(UpdatedByHeader, c.operator)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return out, TransportError(op, errors.Wrap(err, "do request"))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return out, &RequestError{
			Op:            op,
			Kind:          KindHTTP,
			StatusCode:    resp.StatusCode,
			ServerMessage: readServerMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, TransportError(op, errors.Wrap(err, "decode"))
	}
	return out, nil
}

// readServerMessage returns "" when the body is not {"error": "..."}.
func readServerMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var eb ErrorBody
	if json.Unmarshal(b, &eb) != nil {
		return ""
	}
	return strings.TrimSpace(eb.Error)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
