// Package gatekeeper talks to the identity service that issues session
// tokens for the registration frontend. Tokens are introspected remotely;
// verified principals are cached briefly so page loads that fan out into
// several API calls do not hammer the introspection endpoint.
package gatekeeper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/platform/logging"
	"github.com/citysports/league-registry/internal/platform/resilience"
	"github.com/citysports/league-registry/internal/usecase"
)

var errGatekeeperTransient = crerr.New("gatekeeper transient failure")

type Config struct {
	BaseURL        string
	IntrospectPath string
	CacheTTL       time.Duration
	CacheMaxToken  int
	Breaker        resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient    *http.Client
	introspectURL string
	cache         *principalCache
	breaker       *resilience.CircuitBreaker
	flight        resilience.SingleFlight
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.Breaker)
	var breaker *resilience.CircuitBreaker
	if breakerCfg.Enabled {
		breaker = resilience.NewCircuitBreaker(
			breakerCfg.FailureThreshold,
			breakerCfg.OpenTimeout,
			breakerCfg.HalfOpenMaxReq,
		)
	}

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		cache:         newPrincipalCache(cfg.CacheTTL, cfg.CacheMaxToken),
		breaker:       breaker,
		logger:        logger,
	}
}

// VerifyAccessToken resolves a bearer token into a Principal. Invalid and
// inactive tokens map to ErrUnauthorized; identity service outages map to
// ErrDependencyUnavailable so callers can answer 503 instead of 401.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	val, err, _ := c.flight.Do(cacheKey, func() (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		if crerr.Is(err, errGatekeeperTransient) {
			return user.Principal{}, fmt.Errorf("%w: identity service unreachable", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	principal, ok := val.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspection result type %T", val)
	}

	c.cache.Set(cacheKey, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			return user.Principal{}, crerr.Wrap(errGatekeeperTransient, "circuit open")
		}
	}

	principal, err := c.callIntrospect(ctx, token)
	if c.breaker != nil {
		if crerr.Is(err, errGatekeeperTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return principal, err
}

func (c *Client) callIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Wrapf(errGatekeeperTransient, "request introspection: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.Wrapf(errGatekeeperTransient, "read introspect response: %v", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.WarnContext(ctx, "gatekeeper introspection server error",
			"status_code", resp.StatusCode,
		)
		return user.Principal{}, crerr.Wrapf(errGatekeeperTransient, "introspection status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return user.Principal{}, fmt.Errorf("gatekeeper introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:  decoded.UserID,
		Email:   decoded.Email,
		IsAdmin: decoded.IsAdmin,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active  bool   `json:"active"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}
