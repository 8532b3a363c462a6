// Package directory is the HTTP JSON client for the booking directory: the
// external service that owns bookings, reviews and the service catalog. The
// client carries an optional bearer token but does not manage it.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Client struct {
	hc      *http.Client
	baseURL string
	token   string
	log     *zap.Logger
}

type Options struct {
	BaseURL string
	// AuthToken, when set, is sent as x-auth-token on every request. Token
	// acquisition and refresh are handled elsewhere.
	AuthToken string
	Timeout   time.Duration
	Logger    *zap.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		hc:      &http.Client{Timeout: opts.Timeout},
		baseURL: opts.BaseURL,
		token:   opts.AuthToken,
		log:     opts.Logger,
	}
}

// do issues one request and decodes the response into out (when non-nil).
// Any status >= 400 becomes an *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		jb, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(jb)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("x-request-id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("x-auth-token", c.token)
	}

	start := time.Now()
	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("directory: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("directory: %s %s: read body: %w", method, path, err)
	}
	c.log.Debug("directory request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if res.StatusCode >= 400 {
		return apiErrorFrom(res.StatusCode, b)
	}
	if out != nil && len(b) > 0 {
		if err := json.Unmarshal(b, out); err != nil {
			return fmt.Errorf("directory: %s %s: decode: %w", method, path, err)
		}
	}
	return nil
}

// BookedSlots returns the reserved slot identifiers for a YYYY-MM-DD date.
func (c *Client) BookedSlots(ctx context.Context, date string) ([]string, error) {
	var res struct {
		BookedSlots []string `json:"bookedSlots"`
	}
	q := url.Values{"date": {date}}
	if err := c.do(ctx, http.MethodGet, "/api/bookings/slots", q, nil, &res); err != nil {
		return nil, err
	}
	return res.BookedSlots, nil
}

// CreateBooking submits one booking for one slot.
func (c *Client) CreateBooking(ctx context.Context, nb NewBooking) (Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, nb, &b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// MyBookings lists the authenticated customer's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/my-bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingByID fetches a single booking.
func (c *Client) BookingByID(ctx context.Context, id string) (Booking, error) {
	var b Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil, nil, &b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// CancelBooking cancels the customer's own booking.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
}

// ListBookingsParams filters the admin booking list. Zero values are omitted.
type ListBookingsParams struct {
	Page   int
	Limit  int
	Date   string
	Status string
}

// AllBookings lists every booking with pagination and filters. Admin only.
func (c *Client) AllBookings(ctx context.Context, p ListBookingsParams) (BookingPage, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	var page BookingPage
	if err := c.do(ctx, http.MethodGet, "/api/bookings/all", q, nil, &page); err != nil {
		return BookingPage{}, err
	}
	return page, nil
}

// UpdateBookingStatus patches a booking's status. Admin only.
func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (Booking, error) {
	var b Booking
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(id), nil, body, &b); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// DeleteBooking removes a booking. Admin only.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(id), nil, nil, nil)
}
