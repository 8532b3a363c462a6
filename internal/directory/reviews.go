package directory

import (
	"context"
	"net/http"
	"net/url"
)

// Reviews lists approved reviews.
func (c *Client) Reviews(ctx context.Context) ([]Review, error) {
	var out []Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllReviews lists every review, approved or not. Admin only.
func (c *Client) AllReviews(ctx context.Context) ([]Review, error) {
	var out []Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews/all", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview submits a customer review; it stays unapproved until an admin
// approves it.
func (c *Client) CreateReview(ctx context.Context, nr NewReview) (Review, error) {
	var r Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", nil, nr, &r); err != nil {
		return Review{}, err
	}
	return r, nil
}

// ApproveReview marks a review visible. Admin only.
func (c *Client) ApproveReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id)+"/approve", nil, struct{}{}, nil)
}

// DeleteReview removes a review. Admin only.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id), nil, nil, nil)
}
