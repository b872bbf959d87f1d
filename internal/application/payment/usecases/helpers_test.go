package usecases

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"sezzlegate/internal/application/payment/services"
	"sezzlegate/internal/application/payment/testutil"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/shared/logger"
)

type fakeActionResource struct {
	mu         sync.Mutex
	calls      int
	lastUUID   string
	lastAmount vo.Amount
	partial    bool
	resp       *ProviderAction
	err        error
}

func newFakeActionResource(providerUUID string) *fakeActionResource {
	return &fakeActionResource{resp: &ProviderAction{UUID: providerUUID, Raw: []byte(`{"uuid":"` + providerUUID + `"}`)}}
}

func (f *fakeActionResource) record(orderUUID string, amount vo.Amount) (*ProviderAction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastUUID = orderUUID
	f.lastAmount = amount
	return f.resp, f.err
}

// releaseRes and refundRes adapt the fake to the two-argument resources.
type releaseRes struct{ *fakeActionResource }

func (r releaseRes) Create(_ context.Context, orderUUID string, amount vo.Amount) (*ProviderAction, error) {
	return r.record(orderUUID, amount)
}

type captureRes struct{ *fakeActionResource }

func (r captureRes) Create(_ context.Context, orderUUID string, amount vo.Amount, partial bool) (*ProviderAction, error) {
	r.mu.Lock()
	r.partial = partial
	r.mu.Unlock()
	return r.record(orderUUID, amount)
}

type allowAllValidator struct{}

func (allowAllValidator) IsAmountValid(context.Context, string, decimal.Decimal, vo.PaymentAction) bool {
	return true
}

type fakeLocker struct {
	acquired bool
	err      error
	released int
}

func (l *fakeLocker) TryAcquire(context.Context, string) (func(), bool, error) {
	if l.err != nil || !l.acquired {
		return func() {}, false, l.err
	}
	return func() { l.released++ }, true, nil
}

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]bool
}

func (r *fakeRecorder) RecordPaymentAction(action string, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string][]bool)
	}
	r.outcomes[action] = append(r.outcomes[action], success)
}

type fakeNotifier struct {
	sent chan Divergence
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(chan Divergence, 1)}
}

func (n *fakeNotifier) NotifyDivergence(_ context.Context, d Divergence) error {
	n.sent <- d
	return nil
}

// actionEnv wires the real payment services over an in-memory repository.
type actionEnv struct {
	repo          *testutil.MockOrderRepository
	validator     AmountValidator
	orderStatus   *services.OrderStatusService
	paymentStatus *services.PaymentStatusService
	orderData     *services.OrderDataService
	exceptions    *services.ExceptionHandler
	log           logger.Interface
}

func newActionEnv() *actionEnv {
	log := logger.NewNopLogger()
	repo := testutil.NewMockOrderRepository()
	return &actionEnv{
		repo:          repo,
		validator:     services.NewPaymentActionValidator(repo, log),
		orderStatus:   services.NewOrderStatusService(repo, log),
		paymentStatus: services.NewPaymentStatusService(repo, log),
		orderData:     services.NewOrderDataService(repo),
		exceptions:    services.NewExceptionHandler(log),
		log:           log,
	}
}
