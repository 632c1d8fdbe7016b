package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"console-backend/internal/models"
)

// Client is the console's view of the remote business API. Read endpoints
// whose response shape varies across deployments return raw JSON; the
// services layer normalizes them.
type Client interface {
	GetPaymentSummary(ctx context.Context, customerID int) (json.RawMessage, error)
	ListCustomerPayments(ctx context.Context, customerID int) (json.RawMessage, error)
	ListInvoices(ctx context.Context, customerID int, invoiceType string) ([]models.Invoice, error)
	CreateCustomerPayment(ctx context.Context, req *models.CreateCustomerPaymentRequest) (*models.CreatePaymentResponse, error)
	ListAccounts(ctx context.Context, rootType string, isGroup bool) ([]models.Account, error)
	GetSale(ctx context.Context, saleID int) (*models.Sale, error)
	Ping(ctx context.Context) error
}

// HTTPClient implements Client against the ERP's JSON API
type HTTPClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewHTTPClient creates an ERP client. The http.Client carries no timeout;
// the ERP's own timeout policy governs.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{},
	}
}

func (c *HTTPClient) GetPaymentSummary(ctx context.Context, customerID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/api/customers/%d/payment-summary", customerID), nil)
}

func (c *HTTPClient) ListCustomerPayments(ctx context.Context, customerID int) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/api/customers/%d/payments", customerID), nil)
}

func (c *HTTPClient) ListInvoices(ctx context.Context, customerID int, invoiceType string) ([]models.Invoice, error) {
	q := url.Values{}
	q.Set("customer_id", strconv.Itoa(customerID))
	if invoiceType != "" {
		q.Set("type", invoiceType)
	}
	raw, err := c.get(ctx, "/api/invoices", q)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Invoice](raw, "invoices")
}

func (c *HTTPClient) ListAccounts(ctx context.Context, rootType string, isGroup bool) ([]models.Account, error) {
	q := url.Values{}
	if rootType != "" {
		q.Set("root_type", rootType)
	}
	q.Set("is_group", strconv.FormatBool(isGroup))
	raw, err := c.get(ctx, "/api/accounts", q)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Account](raw, "accounts")
}

func (c *HTTPClient) GetSale(ctx context.Context, saleID int) (*models.Sale, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/api/sales/%d", saleID), nil)
	if err != nil {
		return nil, err
	}
	var sale models.Sale
	if err := decodeObject(raw, &sale); err != nil {
		return nil, fmt.Errorf("erp: decode sale %d: %w", saleID, err)
	}
	return &sale, nil
}

func (c *HTTPClient) CreateCustomerPayment(ctx context.Context, req *models.CreateCustomerPaymentRequest) (*models.CreatePaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("erp: encode payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/customer-payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("erp: create payment: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erp: read payment response: %w", err)
	}
	if err := statusError(resp.StatusCode, raw); err != nil {
		return nil, err
	}

	var out models.CreatePaymentResponse
	if err := decodeObject(raw, &out); err != nil {
		return nil, fmt.Errorf("erp: decode payment response: %w", err)
	}
	return &out, nil
}

// Ping checks ERP reachability for health reporting
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/ping", nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return ErrServerFault
	}
	return nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erp: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erp: read %s: %w", path, err)
	}
	if err := statusError(resp.StatusCode, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *HTTPClient) authorize(req *http.Request) {
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}

// erpErrorBody is the error envelope the ERP uses for 4xx responses
type erpErrorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

func statusError(status int, body []byte) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		log.Printf("[ERP] server fault %d: %s", status, truncate(body, 256))
		return fmt.Errorf("%w (status %d)", ErrServerFault, status)
	default:
		var parsed erpErrorBody
		if err := json.Unmarshal(body, &parsed); err != nil {
			return &ValidationError{Message: "request rejected"}
		}
		return &ValidationError{Message: parsed.Error, Fields: parsed.Errors}
	}
}

// decodeObject unwraps an optional {data: {...}} envelope before decoding
func decodeObject(raw []byte, dst interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		return json.Unmarshal(envelope.Data, dst)
	}
	return json.Unmarshal(raw, dst)
}

// decodeList tolerates a bare array, {data: [...]}, or {<key>: [...]}
func decodeList[T any](raw []byte, key string) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("erp: unexpected list shape: %w", err)
	}
	for _, k := range []string{"data", key} {
		inner, ok := envelope[k]
		if !ok {
			continue
		}
		var list []T
		if err := json.Unmarshal(inner, &list); err == nil {
			return list, nil
		}
		// {data: {<key>: [...]}}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err == nil {
			if innerList, ok := nested[key]; ok {
				if err := json.Unmarshal(innerList, &list); err == nil {
					return list, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("erp: no %s list in response", key)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
