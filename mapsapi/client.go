package mapsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// RequestTimeout is the default request timeout
	RequestTimeout = 20 * time.Second
	// RetryInterval is the default request retry interval
	RetryInterval = 500 * time.Millisecond
	// MaxRetries specifies max retry attempts
	MaxRetries = 3
)

// Client handles communication with the Google Maps web service APIs.
type Client struct {
	client  *http.Client
	token   string
	baseURL string
	logger  logrus.FieldLogger

	retries       int
	retryInterval time.Duration
}

// NewClient returns a new client for the Maps APIs.
func NewClient(logger logrus.FieldLogger, token, host string) *Client {
	return &Client{
		client:        &http.Client{Timeout: RequestTimeout},
		token:         token,
		baseURL:       host,
		logger:        logger,
		retries:       MaxRetries,
		retryInterval: RetryInterval,
	}
}

// NewRequest creates a new GET request against the named API endpoint, with
// the query parameters and the client's API key attached.
func (c *Client) NewRequest(ctx context.Context, endpoint string, query url.Values) (*http.Request, error) {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("key", c.token)

	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, q.Encode())
	return http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
}

// Do sends the request and decodes the JSON response body into v. Requests
// that fail on the transport level or with a 5xx/429 status are retried a
// bounded number of times.
func (c *Client) Do(req *http.Request, v responseStatus) error {
	var err error
	for i := 1; i <= c.retries; i++ {
		var retry bool
		retry, err = c.do(req, v, i)
		if retry {
			time.Sleep(c.retryInterval)
			continue
		}
		return err
	}
	return err
}

// responseStatus is implemented by all Maps API response payloads; every one
// of them carries a status string and an optional error message.
type responseStatus interface {
	apiStatus() (status, message string)
}

func (c *Client) do(req *http.Request, v responseStatus, attempt int) (retry bool, err error) {
	resp, err := c.client.Do(req)

	defer func() {
		if resp != nil {
			if cerr := resp.Body.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	}()

	if shouldRetry(resp, err, attempt, c.retries) {
		c.logger.WithField("attempt", attempt).Debug("retrying Maps API request")
		return true, err
	}

	if err != nil {
		return false, err
	}

	if err = checkHTTPResponse(resp); err != nil {
		return false, err
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		if err == io.EOF {
			return false, ErrUnknown
		}
		return false, err
	}

	return false, checkAPIStatus(v)
}

func checkHTTPResponse(r *http.Response) error {
	if r == nil {
		return ErrUnknown
	}
	if c := r.StatusCode; c >= 200 && c <= 299 {
		return nil
	}
	return fmt.Errorf("unexpected HTTP error from %s: %d %s",
		r.Request.URL, r.StatusCode, http.StatusText(r.StatusCode))
}

func checkAPIStatus(v responseStatus) error {
	status, message := v.apiStatus()
	switch status {
	case StatusOK, StatusZeroResults:
		return nil
	case StatusRequestDenied:
		if message != "" {
			return fmt.Errorf("%w: %s", ErrNotAuthenticated, message)
		}
		return ErrNotAuthenticated
	default:
		return APIError{Status: status, Message: message}
	}
}

func shouldRetry(resp *http.Response, err error, attempt, maxAttempts int) bool {
	if attempt >= maxAttempts {
		return false
	}

	if resp == nil || err != nil {
		return true
	}

	if resp.StatusCode >= 500 || resp.StatusCode == 429 {
		return true
	}

	return false
}
