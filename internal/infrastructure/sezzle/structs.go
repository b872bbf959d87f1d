package sezzle

import "time"

// Amount is the provider's monetary payload.
type Amount struct {
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
}

type Link struct {
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
	Rel    string `json:"rel,omitempty"`
}

type CaptureRequest struct {
	CaptureAmount  Amount `json:"capture_amount"`
	PartialCapture bool   `json:"partial_capture"`
}

// ActionResponse is returned by capture, release and refund. Raw keeps the body
// for the audit trail.
type ActionResponse struct {
	UUID  string `json:"uuid"`
	Links []Link `json:"links,omitempty"`
	Raw   []byte `json:"-"`
}

type Address struct {
	Name        string `json:"name,omitempty"`
	Street      string `json:"street,omitempty"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type Customer struct {
	Email           string   `json:"email,omitempty"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

type Item struct {
	Name     string `json:"name"`
	SKU      string `json:"sku,omitempty"`
	Quantity int    `json:"quantity"`
	Price    Amount `json:"price"`
}

type SessionOrder struct {
	Intent           string  `json:"intent"`
	ReferenceID      string  `json:"reference_id"`
	Description      string  `json:"description,omitempty"`
	RequiresShipping bool    `json:"requires_shipping_info"`
	Items            []Item  `json:"items,omitempty"`
	OrderAmount      Amount  `json:"order_amount"`
	ShippingAmount   *Amount `json:"shipping_amount,omitempty"`
	TaxAmount        *Amount `json:"tax_amount,omitempty"`
}

type SessionRequest struct {
	CancelURL   Link         `json:"cancel_url"`
	CompleteURL Link         `json:"complete_url"`
	Customer    *Customer    `json:"customer,omitempty"`
	Order       SessionOrder `json:"order"`
}

type SessionResponse struct {
	UUID  string `json:"uuid"`
	Links []Link `json:"links,omitempty"`
	Order struct {
		UUID        string `json:"uuid"`
		CheckoutURL string `json:"checkout_url"`
		Links       []Link `json:"links,omitempty"`
	} `json:"order"`
}

type Authorization struct {
	AuthorizationAmount Amount     `json:"authorization_amount"`
	Approved            bool       `json:"approved"`
	Expiration          *time.Time `json:"expiration,omitempty"`
}

type OrderResponse struct {
	UUID          string         `json:"uuid"`
	Intent        string         `json:"intent"`
	ReferenceID   string         `json:"reference_id"`
	OrderAmount   Amount         `json:"order_amount"`
	Authorization *Authorization `json:"authorization,omitempty"`
}

type authenticationRequest struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

type authenticationResponse struct {
	Token          string    `json:"token"`
	ExpirationDate time.Time `json:"expiration_date"`
	MerchantUUID   string    `json:"merchant_uuid"`
}
