package sezzle

import (
	"context"
	"net/http"
	"net/url"
)

func orderPath(orderUUID string, action string) string {
	p := "/v2/order/" + url.PathEscape(orderUUID)
	if action != "" {
		p += "/" + action
	}
	return p
}

// ReleaseResource releases part or all of an authorization.
type ReleaseResource struct {
	client *Client
}

func NewReleaseResource(client *Client) *ReleaseResource {
	return &ReleaseResource{client: client}
}

func (r *ReleaseResource) Create(ctx context.Context, orderUUID string, amount Amount) (*ActionResponse, error) {
	return r.client.action(ctx, "release", orderUUID, amount)
}

// CaptureResource settles part or all of an authorization.
type CaptureResource struct {
	client *Client
}

func NewCaptureResource(client *Client) *CaptureResource {
	return &CaptureResource{client: client}
}

func (r *CaptureResource) Create(ctx context.Context, orderUUID string, req CaptureRequest) (*ActionResponse, error) {
	return r.client.action(ctx, "capture", orderUUID, req)
}

// RefundResource returns captured funds to the customer.
type RefundResource struct {
	client *Client
}

func NewRefundResource(client *Client) *RefundResource {
	return &RefundResource{client: client}
}

func (r *RefundResource) Create(ctx context.Context, orderUUID string, amount Amount) (*ActionResponse, error) {
	return r.client.action(ctx, "refund", orderUUID, amount)
}

func (c *Client) action(ctx context.Context, action, orderUUID string, body any) (*ActionResponse, error) {
	var resp ActionResponse
	raw, err := c.do(ctx, action, http.MethodPost, orderPath(orderUUID, action), body, &resp)
	if err != nil {
		return nil, err
	}
	resp.Raw = raw
	return &resp, nil
}

type OrderResource struct {
	client *Client
}

func NewOrderResource(client *Client) *OrderResource {
	return &OrderResource{client: client}
}

func (r *OrderResource) Get(ctx context.Context, orderUUID string) (*OrderResponse, error) {
	var resp OrderResponse
	if _, err := r.client.do(ctx, "get_order", http.MethodGet, orderPath(orderUUID, ""), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type SessionResource struct {
	client *Client
}

func NewSessionResource(client *Client) *SessionResource {
	return &SessionResource{client: client}
}

func (r *SessionResource) Create(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	var resp SessionResponse
	if _, err := r.client.do(ctx, "session", http.MethodPost, "/v2/session", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
