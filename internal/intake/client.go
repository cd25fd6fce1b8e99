package intake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"labequip/storefront/internal/config"
	"labequip/storefront/internal/domain"
	"labequip/storefront/internal/endpoint"
)

var (
	ErrNoEndpoint  = errors.New("no intake endpoint configured")
	ErrCircuitOpen = errors.New("intake circuit breaker is open")
)

// Client delivers accepted leads to the external lead intake service
type Client interface {
	Deliver(ctx context.Context, lead domain.Lead) error
}

type intakeClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	endpoints  endpoint.Supplier

	// Circuit breaker for throttling by the intake service
	circuitBreakerMutex sync.RWMutex
	throttledUntil      time.Time
	circuitBreakerDelay time.Duration
}

func NewClient(cfg config.IntakeConfig, endpoints endpoint.Supplier) Client {
	// Every POST carries an Idempotency-Key, so retrying it is safe
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(config.IntakeRetryMaxWait).
		SetAllowNonIdempotentRetry(true).
		SetRetryDefaultConditions(false).
		AddRetryConditions(retryable).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		client.SetHeader("X-API-Key", cfg.APIKey)
	}

	return &intakeClient{
		rl:                  ratelimit.New(cfg.MaxRequestsPerSecond),
		httpClient:          client,
		endpoints:           endpoints,
		circuitBreakerDelay: 5 * time.Minute,
	}
}

// Deliver posts the lead to the next endpoint. On failure it tries the following endpoint once
// when more than one is configured.
func (c *intakeClient) Deliver(ctx context.Context, lead domain.Lead) error {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Delivery of lead %s blocked by circuit breaker. Remaining time: %v", lead.ID, remaining.Round(time.Second))
		return fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	url := c.endpoints.Get()
	if url == "" {
		return ErrNoEndpoint
	}

	err := c.post(ctx, url, lead)
	if err == nil || c.endpoints.Len() < 2 || errors.Is(err, ErrCircuitOpen) || ctx.Err() != nil {
		return err
	}

	fallback := c.endpoints.Get()
	log.Warnf("🔄 Delivery of lead %s to %s failed, switching to %s: %v", lead.ID, url, fallback, err)
	return c.post(ctx, fallback, lead)
}

func (c *intakeClient) post(ctx context.Context, url string, lead domain.Lead) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", lead.ID).
		SetBody(lead).
		Post(url)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to post lead: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		c.triggerCircuitBreaker(retryAfter(resp.Header().Get("Retry-After"), c.circuitBreakerDelay))
		return fmt.Errorf("%w: intake service throttled lead %s", ErrCircuitOpen, lead.ID)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	log.Debugf("Delivered lead %s to %s", lead.ID, url)
	return nil
}

func (c *intakeClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.throttledUntil)
	wasTriggered := !c.throttledUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		// Double-check after acquiring write lock
		if !c.throttledUntil.IsZero() && now.After(c.throttledUntil) {
			c.throttledUntil = time.Time{}
			log.Infof("✅ Intake circuit breaker re-enabled - deliveries are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *intakeClient) triggerCircuitBreaker(delay time.Duration) {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.throttledUntil = time.Now().Add(delay)
	log.Warnf("🚫 Intake circuit breaker activated! Deliveries paused until %v",
		c.throttledUntil.Format("15:04:05"))
}

func (c *intakeClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.throttledUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// retryable retries transport failures and 5xx responses. 429 is left to the circuit breaker.
func retryable(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := res.StatusCode()
	return code == 0 || (code >= http.StatusInternalServerError && code != http.StatusNotImplemented)
}

// retryAfter parses a Retry-After header given in seconds
func retryAfter(header string, fallback time.Duration) time.Duration {
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
