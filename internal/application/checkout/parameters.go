package checkout

// SessionBuilderParameters is everything the storefront knows when the
// customer picks Sezzle at checkout.
type SessionBuilderParameters struct {
	UserData       UserData   `json:"user_data"`
	BasketData     BasketData `json:"basket_data"`
	BasketUniqueID string     `json:"basket_unique_id" validate:"required,max=64"`
	PaymentType    string     `json:"payment_type" validate:"omitempty,oneof=sezzle"`
	PaymentToken   string     `json:"payment_token,omitempty"`
}

type UserData struct {
	Email           string   `json:"email" validate:"required,email"`
	FirstName       string   `json:"first_name" validate:"required,max=100"`
	LastName        string   `json:"last_name" validate:"required,max=100"`
	Phone           string   `json:"phone,omitempty"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

type Address struct {
	Name        string `json:"name"`
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code" validate:"omitempty,iso3166_1_alpha2"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// BasketData carries amounts as decimal strings in the basket currency.
type BasketData struct {
	OrderNumber    string       `json:"order_number,omitempty"`
	Currency       string       `json:"currency" validate:"required,iso4217"`
	AmountTotal    string       `json:"amount_total" validate:"required,money"`
	ShippingAmount string       `json:"shipping_amount,omitempty" validate:"omitempty,money"`
	TaxAmount      string       `json:"tax_amount,omitempty" validate:"omitempty,money"`
	RequiresShip   bool         `json:"requires_shipping"`
	Content        []BasketLine `json:"content" validate:"dive"`
}

type BasketLine struct {
	Name     string `json:"name" validate:"required"`
	SKU      string `json:"sku,omitempty"`
	Quantity int    `json:"quantity" validate:"min=1"`
	Price    string `json:"price" validate:"required,money"`
}

// OrderNumberOrDefault falls back to the basket id when the shop has not
// assigned an order number yet.
func (p SessionBuilderParameters) OrderNumberOrDefault() string {
	if p.BasketData.OrderNumber != "" {
		return p.BasketData.OrderNumber
	}
	return p.BasketUniqueID
}
