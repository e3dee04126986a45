package woosync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/jarzapp/woosync_backend/models"
)

// wooClient talks to the storefront's REST API. Credentials ride as query
// parameters; pagination is page/per_page; non-2xx responses become APIError.
// No retry/backoff here: callers re-invoke on the next schedule.
type wooClient struct {
	baseURL    string
	key        string
	secret     string
	apiVersion string
	http       *http.Client
	limiter    <-chan time.Time
}

func newWooClient(cfg models.SyncConfig) (*wooClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("storefront base url is empty")
	}
	if strings.TrimSpace(cfg.ConsumerKey) == "" || strings.TrimSpace(cfg.ConsumerSecret) == "" {
		return nil, errors.New("storefront credentials are empty")
	}
	rateLimitPerMin := int64(60)
	if v := strings.TrimSpace(os.Getenv("WOO_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			rateLimitPerMin = n
		}
	}
	interval := time.Minute / time.Duration(rateLimitPerMin)

	return &wooClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		key:        cfg.ConsumerKey,
		secret:     cfg.ConsumerSecret,
		apiVersion: cfg.APIVersion,
		http:       &http.Client{Timeout: 30 * time.Second},
		limiter:    time.Tick(interval),
	}, nil
}

func (c *wooClient) resourceURL(resource string) string {
	return fmt.Sprintf("%s/wp-json/wc/%s/%s", c.baseURL, c.apiVersion, resource)
}

func (c *wooClient) do(ctx context.Context, method string, endpoint string, params url.Values, body interface{}) ([]byte, error) {
	<-c.limiter
	if params == nil {
		params = url.Values{}
	}
	params.Set("consumer_key", c.key)
	params.Set("consumer_secret", c.secret)
	endpoint = endpoint + "?" + params.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        strings.SplitN(endpoint, "?", 2)[0],
			Message:    strings.TrimSpace(string(respBody)),
		}
	}
	return respBody, nil
}

func (c *wooClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

type ListOrdersOptions struct {
	Page     int
	PerPage  int
	Statuses []string
	After    string
	OrderBy  string
}

func (c *wooClient) ListOrders(ctx context.Context, opts ListOrdersOptions) ([]WooOrder, error) {
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if len(opts.Statuses) > 0 {
		params.Set("status", strings.Join(opts.Statuses, ","))
	}
	if opts.After != "" {
		params.Set("after", opts.After)
	}
	if opts.OrderBy != "" {
		params.Set("orderby", opts.OrderBy)
	}

	var orders []WooOrder
	err := c.getJSON(ctx, c.resourceURL("orders"), params, &orders)
	return orders, err
}

func (c *wooClient) GetOrder(ctx context.Context, orderID int64) (WooOrder, error) {
	var order WooOrder
	err := c.getJSON(ctx, c.resourceURL("orders/"+strconv.FormatInt(orderID, 10)), nil, &order)
	return order, err
}

func (c *wooClient) ListCustomers(ctx context.Context, page int, perPage int, after string) ([]WooCustomer, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}
	if after != "" {
		params.Set("after", after)
		params.Set("orderby", "registered_date")
		params.Set("order", "asc")
	}

	var customers []WooCustomer
	err := c.getJSON(ctx, c.resourceURL("customers"), params, &customers)
	return customers, err
}

func (c *wooClient) GetCustomer(ctx context.Context, customerID int64) (WooCustomer, error) {
	var customer WooCustomer
	err := c.getJSON(ctx, c.resourceURL("customers/"+strconv.FormatInt(customerID, 10)), nil, &customer)
	return customer, err
}

func (c *wooClient) CreateCustomer(ctx context.Context, payload map[string]interface{}) (WooCustomer, error) {
	var customer WooCustomer
	body, err := c.do(ctx, http.MethodPost, c.resourceURL("customers"), nil, payload)
	if err != nil {
		return customer, err
	}
	err = json.Unmarshal(body, &customer)
	return customer, err
}

func (c *wooClient) UpdateCustomer(ctx context.Context, customerID int64, payload map[string]interface{}) (WooCustomer, error) {
	var customer WooCustomer
	body, err := c.do(ctx, http.MethodPut, c.resourceURL("customers/"+strconv.FormatInt(customerID, 10)), nil, payload)
	if err != nil {
		return customer, err
	}
	err = json.Unmarshal(body, &customer)
	return customer, err
}

func (c *wooClient) CreateOrder(ctx context.Context, payload map[string]interface{}) (WooOrder, error) {
	var order WooOrder
	body, err := c.do(ctx, http.MethodPost, c.resourceURL("orders"), nil, payload)
	if err != nil {
		return order, err
	}
	err = json.Unmarshal(body, &order)
	return order, err
}

func (c *wooClient) UpdateOrder(ctx context.Context, orderID int64, payload map[string]interface{}) (WooOrder, error) {
	var order WooOrder
	body, err := c.do(ctx, http.MethodPut, c.resourceURL("orders/"+strconv.FormatInt(orderID, 10)), nil, payload)
	if err != nil {
		return order, err
	}
	err = json.Unmarshal(body, &order)
	return order, err
}

// ListDeliveryAreas hits the storefront's custom endpoint outside the wc
// namespace.
func (c *wooClient) ListDeliveryAreas(ctx context.Context) ([]DeliveryArea, error) {
	endpoint := c.baseURL + "/wp-json/jarz/v1/delivery-areas"
	var resp deliveryAreasResponse
	if err := c.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Areas, nil
}
