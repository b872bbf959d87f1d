// Package adapters connects infrastructure clients to application ports.
package adapters

import (
	"context"

	"sezzlegate/internal/application/payment/usecases"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/infrastructure/sezzle"
)

var (
	_ usecases.ReleaseResource = (*SezzleReleaseAdapter)(nil)
	_ usecases.CaptureResource = (*SezzleCaptureAdapter)(nil)
	_ usecases.RefundResource  = (*SezzleRefundAdapter)(nil)
)

type SezzleReleaseAdapter struct {
	resource *sezzle.ReleaseResource
}

func NewSezzleReleaseAdapter(resource *sezzle.ReleaseResource) *SezzleReleaseAdapter {
	return &SezzleReleaseAdapter{resource: resource}
}

func (a *SezzleReleaseAdapter) Create(ctx context.Context, orderUUID string, amount vo.Amount) (*usecases.ProviderAction, error) {
	resp, err := a.resource.Create(ctx, orderUUID, toSezzleAmount(amount))
	return toProviderAction(resp, err)
}

type SezzleCaptureAdapter struct {
	resource *sezzle.CaptureResource
}

func NewSezzleCaptureAdapter(resource *sezzle.CaptureResource) *SezzleCaptureAdapter {
	return &SezzleCaptureAdapter{resource: resource}
}

func (a *SezzleCaptureAdapter) Create(ctx context.Context, orderUUID string, amount vo.Amount, partial bool) (*usecases.ProviderAction, error) {
	resp, err := a.resource.Create(ctx, orderUUID, sezzle.CaptureRequest{
		CaptureAmount:  toSezzleAmount(amount),
		PartialCapture: partial,
	})
	return toProviderAction(resp, err)
}

type SezzleRefundAdapter struct {
	resource *sezzle.RefundResource
}

func NewSezzleRefundAdapter(resource *sezzle.RefundResource) *SezzleRefundAdapter {
	return &SezzleRefundAdapter{resource: resource}
}

func (a *SezzleRefundAdapter) Create(ctx context.Context, orderUUID string, amount vo.Amount) (*usecases.ProviderAction, error) {
	resp, err := a.resource.Create(ctx, orderUUID, toSezzleAmount(amount))
	return toProviderAction(resp, err)
}

func toSezzleAmount(amount vo.Amount) sezzle.Amount {
	return sezzle.Amount{
		AmountInCents: amount.AmountInCents(),
		Currency:      amount.Currency(),
	}
}

func toProviderAction(resp *sezzle.ActionResponse, err error) (*usecases.ProviderAction, error) {
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return &usecases.ProviderAction{UUID: resp.UUID, Raw: resp.Raw}, nil
}
