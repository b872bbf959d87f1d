package checkout

import (
	"fmt"

	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/infrastructure/sezzle"
)

const sessionIntentAuth = "AUTH"

// SessionBuilder turns storefront parameters into a provider session request.
type SessionBuilder struct {
	completeURL string
	cancelURL   string
}

func NewSessionBuilder(completeURL, cancelURL string) *SessionBuilder {
	return &SessionBuilder{completeURL: completeURL, cancelURL: cancelURL}
}

func (b *SessionBuilder) Build(params SessionBuilderParameters) (sezzle.SessionRequest, error) {
	basket := params.BasketData

	total, err := toProviderAmount(basket.AmountTotal, basket.Currency)
	if err != nil {
		return sezzle.SessionRequest{}, err
	}

	order := sezzle.SessionOrder{
		Intent:           sessionIntentAuth,
		ReferenceID:      params.BasketUniqueID,
		RequiresShipping: basket.RequiresShip,
		OrderAmount:      total,
		Items:            make([]sezzle.Item, 0, len(basket.Content)),
	}
	if basket.OrderNumber != "" {
		order.Description = "Order " + basket.OrderNumber
	}

	if basket.ShippingAmount != "" {
		shipping, err := toProviderAmount(basket.ShippingAmount, basket.Currency)
		if err != nil {
			return sezzle.SessionRequest{}, err
		}
		order.ShippingAmount = &shipping
	}
	if basket.TaxAmount != "" {
		tax, err := toProviderAmount(basket.TaxAmount, basket.Currency)
		if err != nil {
			return sezzle.SessionRequest{}, err
		}
		order.TaxAmount = &tax
	}

	for _, line := range basket.Content {
		price, err := toProviderAmount(line.Price, basket.Currency)
		if err != nil {
			return sezzle.SessionRequest{}, fmt.Errorf("basket line %q: %w", line.Name, err)
		}
		order.Items = append(order.Items, sezzle.Item{
			Name:     line.Name,
			SKU:      line.SKU,
			Quantity: line.Quantity,
			Price:    price,
		})
	}

	return sezzle.SessionRequest{
		CancelURL:   sezzle.Link{Href: b.cancelURL, Method: "GET"},
		CompleteURL: sezzle.Link{Href: b.completeURL, Method: "GET"},
		Customer:    toProviderCustomer(params.UserData),
		Order:       order,
	}, nil
}

func toProviderAmount(value, currency string) (sezzle.Amount, error) {
	amount, err := vo.ParseAmount(value, currency)
	if err != nil {
		return sezzle.Amount{}, err
	}
	return sezzle.Amount{AmountInCents: amount.AmountInCents(), Currency: amount.Currency()}, nil
}

func toProviderCustomer(u UserData) *sezzle.Customer {
	return &sezzle.Customer{
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Phone:           u.Phone,
		BillingAddress:  toProviderAddress(u.BillingAddress),
		ShippingAddress: toProviderAddress(u.ShippingAddress),
	}
}

func toProviderAddress(a *Address) *sezzle.Address {
	if a == nil {
		return nil
	}
	return &sezzle.Address{
		Name:        a.Name,
		Street:      a.Street,
		Street2:     a.Street2,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		CountryCode: a.CountryCode,
		PhoneNumber: a.PhoneNumber,
	}
}
