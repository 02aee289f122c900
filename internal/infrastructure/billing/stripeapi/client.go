// Package stripeapi is the HTTP client for the payment provider that hosts
// league fee products and member subscriptions. League records stay the
// source of truth for pricing; the provider only carries the linkage from
// its products back to league IDs.
package stripeapi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/citysports/league-registry/internal/platform/logging"
	"github.com/citysports/league-registry/internal/platform/resilience"
)

var errBillingTransient = crerr.New("billing transient failure")

// Product is a sellable league fee on the provider side. LeagueID is empty
// while the product is not linked to any league.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	LeagueID string  `json:"league_id,omitempty"`
	Active   bool    `json:"active"`
}

// Subscription is a recurring membership on the provider side.
type Subscription struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Status            string    `json:"status"`
	PlanName          string    `json:"plan_name"`
	CurrentPeriodEnd  time.Time `json:"current_period_end"`
	CancelAtPeriodEnd bool      `json:"cancel_at_period_end"`
}

type Config struct {
	BaseURL        string
	SecretKey      string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	client         *http.Client
	baseURL        string
	secretKey      string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		secretKey:      strings.TrimSpace(cfg.SecretKey),
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListProducts returns every product, linked or not. The league editor uses
// it to offer the full catalog when relinking.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Data []Product `json:"data"`
	}
	if err := c.call(ctx, http.MethodGet, "/v1/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetProductByLeague returns the product currently linked to leagueID.
func (c *Client) GetProductByLeague(ctx context.Context, leagueID string) (Product, bool, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Product{}, false, crerr.New("league id is required")
	}

	var out struct {
		Data []Product `json:"data"`
	}
	path := "/v1/products?league_id=" + url.QueryEscape(leagueID)
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Product{}, false, err
	}
	if len(out.Data) == 0 {
		return Product{}, false, nil
	}

	return out.Data[0], true, nil
}

// LinkProductToLeague points the provider product at leagueID.
func (c *Client) LinkProductToLeague(ctx context.Context, productID, leagueID string) error {
	return c.updateProductLeague(ctx, productID, &leagueID)
}

// UnlinkProduct clears the product's league linkage.
func (c *Client) UnlinkProduct(ctx context.Context, productID string) error {
	return c.updateProductLeague(ctx, productID, nil)
}

func (c *Client) updateProductLeague(ctx context.Context, productID string, leagueID *string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return crerr.New("product id is required")
	}
	if leagueID != nil && strings.TrimSpace(*leagueID) == "" {
		return crerr.New("league id is required when linking")
	}

	payload := struct {
		LeagueID *string `json:"league_id"`
	}{LeagueID: leagueID}

	path := "/v1/products/" + url.PathEscape(productID)
	return c.call(ctx, http.MethodPost, path, payload, nil)
}

// GetSubscriptionByUser returns the user's membership subscription, when one
// exists.
func (c *Client) GetSubscriptionByUser(ctx context.Context, userID string) (Subscription, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Subscription{}, false, crerr.New("user id is required")
	}

	var out struct {
		Data []Subscription `json:"data"`
	}
	path := "/v1/subscriptions?user_id=" + url.QueryEscape(userID) + "&status=active"
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Subscription{}, false, err
	}
	if len(out.Data) == 0 {
		return Subscription{}, false, nil
	}

	return out.Data[0], true, nil
}

// call runs one provider request with breaker protection and bounded retry
// on transient failures. Only the last attempt's error is returned.
func (c *Client) call(ctx context.Context, method, path string, payload any, out any) error {
	if c.baseURL == "" {
		return crerr.New("billing base url is not configured")
	}

	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return crerr.Wrap(err, "marshal billing payload")
		}
		body = encoded
	}

	attempts := c.retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		lastErr = c.doOnce(ctx, method, path, body, out)
		if lastErr == nil {
			return nil
		}
		if !stderrors.Is(lastErr, errBillingTransient) {
			return lastErr
		}

		c.logger.WarnContext(ctx, "billing request retry",
			"method", method,
			"path", path,
			"attempt", attempt+1,
			"error", lastErr,
		)
	}

	return lastErr
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return fmt.Errorf("%w: circuit %s", errBillingTransient, c.breaker.State())
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	requestURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return crerr.Wrap(err, "create billing request")
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "billing request",
		"method", method,
		"url", requestURL,
		"body_preview", previewBody(body, 2048),
	)

	resp, err := c.client.Do(req)
	if err != nil {
		callErr := fmt.Errorf("%w: %s %s: %v", errBillingTransient, method, path, err)
		c.recordCircuitResult(callErr)
		return callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		callErr := fmt.Errorf("%w: read billing response: %v", errBillingTransient, err)
		c.recordCircuitResult(callErr)
		return callErr
	}

	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			callErr := fmt.Errorf("%w: %s %s status=%d body=%s",
				errBillingTransient, method, path, resp.StatusCode, previewBody(raw, 512))
			c.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf("%s %s status=%d body=%s",
			method, path, resp.StatusCode, previewBody(raw, 512))
		c.recordCircuitResult(callErr)
		return callErr
	}

	c.recordCircuitResult(nil)

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return crerr.Wrapf(err, "unmarshal billing response for %s %s", method, path)
	}

	return nil
}

// previewBody copies into a pooled buffer so large provider payloads do not
// stick around in log fields.
func previewBody(raw []byte, max int) string {
	if len(raw) == 0 {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if len(raw) > max {
		_, _ = buf.Write(raw[:max])
		_, _ = buf.WriteString("...(truncated)")
	} else {
		_, _ = buf.Write(raw)
	}

	return buf.String()
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled || c.breaker == nil {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errBillingTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
