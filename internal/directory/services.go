package directory

import (
	"context"
	"net/http"
	"net/url"
)

// Services lists the service catalog.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var out []Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateService adds a catalog entry. Admin only.
func (c *Client) CreateService(ctx context.Context, s Service) (Service, error) {
	var out Service
	if err := c.do(ctx, http.MethodPost, "/api/services", nil, s, &out); err != nil {
		return Service{}, err
	}
	return out, nil
}

// UpdateService replaces a catalog entry. Admin only.
func (c *Client) UpdateService(ctx context.Context, id string, s Service) (Service, error) {
	var out Service
	if err := c.do(ctx, http.MethodPut, "/api/services/"+url.PathEscape(id), nil, s, &out); err != nil {
		return Service{}, err
	}
	return out, nil
}

// DeleteService removes a catalog entry. Admin only.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/services/"+url.PathEscape(id), nil, nil, nil)
}
