package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"studio/pkg/logger"
	"studio/pkg/model"
)

const (
	PathHome          = "/api/home/"
	PathContact       = "/api/contact/"
	PathPortfolio     = "/api/portfolio/"
	PathServices      = "/api/services/"
	PathCreateBooking = "/api/bookings/create/"

	CSRFHeaderName = "X-CSRFToken"
)

// StatusError is returned by the read endpoints for a non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// StudioClient is the typed client for the studio content and booking API.
type StudioClient struct {
	http           *HttpClient
	requestTimeout time.Duration
	log            *logger.Logger
}

func NewStudioClient(baseURL string, requestTimeout time.Duration, log *logger.Logger) (*StudioClient, error) {
	httpClient, err := NewHttpClient(baseURL)
	if err != nil {
		return nil, err
	}
	return &StudioClient{
		http:           httpClient,
		requestTimeout: requestTimeout,
		log:            log,
	}, nil
}

func (c *StudioClient) BaseURL() string {
	return c.http.BaseURL
}

func (c *StudioClient) Jar() http.CookieJar {
	return c.http.HTTPClient.Jar
}

func (c *StudioClient) Home(ctx context.Context) (*model.HomePageData, error) {
	var env model.Envelope[model.HomePageData]
	if err := c.getJSON(ctx, PathHome, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *StudioClient) Contact(ctx context.Context) (*model.ContactData, error) {
	var env model.Envelope[model.ContactData]
	if err := c.getJSON(ctx, PathContact, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *StudioClient) Portfolio(ctx context.Context, page int, category *int64) (*model.PortfolioPage, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if category != nil {
		q.Set("category", strconv.FormatInt(*category, 10))
	}

	var out model.PortfolioPage
	if err := c.getJSON(ctx, withQuery(PathPortfolio, q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StudioClient) Services(ctx context.Context, page int) (*model.ServicesPage, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}

	var out model.ServicesPage
	if err := c.getJSON(ctx, withQuery(PathServices, q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PrimeCSRF issues the GET whose only purpose is to make the server set the csrftoken
// cookie in the jar. The body is ignored.
func (c *StudioClient) PrimeCSRF(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.http.GET(ctx, PathHome)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &StatusError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	return nil
}

// CreateBooking posts the request and returns the raw response for the caller to
// interpret. token is sent as X-CSRFToken when non-empty.
func (c *StudioClient) CreateBooking(ctx context.Context, req model.BookingRequest, token string) (*Response, error) {
	headers := map[string]string{}
	if token != "" {
		headers[CSRFHeaderName] = token
	}

	resp, err := c.http.POSTWithHeaders(ctx, PathCreateBooking, req, headers)
	if err != nil {
		return nil, err
	}
	c.log.Debug("booking request answered", "status", resp.StatusCode)
	return resp, nil
}

func (c *StudioClient) getJSON(ctx context.Context, path string, target any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.http.GET(ctx, path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &StatusError{StatusCode: resp.StatusCode, Message: GetErrorMessage(resp)}
	}
	if err := resp.DecodeJSON(target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func (c *StudioClient) CloseIdleConnections() {
	c.http.HTTPClient.CloseIdleConnections()
}
