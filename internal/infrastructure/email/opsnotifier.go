package email

import (
	"context"
	"fmt"
	"time"

	"sezzlegate/internal/application/payment/usecases"
	"sezzlegate/internal/shared/logger"
)

// OpsNotifier mails operations when the provider accepted an action but the
// local order could not be updated.
type OpsNotifier struct {
	service    *SMTPEmailService
	recipients []string
	logger     logger.Interface
}

var _ usecases.DivergenceNotifier = (*OpsNotifier)(nil)

func NewOpsNotifier(service *SMTPEmailService, recipients []string, log logger.Interface) *OpsNotifier {
	return &OpsNotifier{service: service, recipients: recipients, logger: log}
}

func (n *OpsNotifier) NotifyDivergence(_ context.Context, d usecases.Divergence) error {
	if len(n.recipients) == 0 {
		n.logger.Warnw("no ops recipients configured, divergence not mailed", "order_uuid", d.OrderUUID)
		return nil
	}

	subject := fmt.Sprintf("[sezzlegate] %s for order %s needs manual reconciliation", d.Action, d.OrderUUID)
	plain := fmt.Sprintf(`The payment provider accepted a %s but the shop order was not updated.

Order UUID:        %s
Provider UUID:     %s
Amount:            %s
Occurred at:       %s
Local error:       %s

Update the order attributes manually before running further payment actions.
`, d.Action, d.OrderUUID, d.ProviderUUID, d.Amount, d.OccurredAt.Format(time.RFC3339), d.Error)

	htmlBody := fmt.Sprintf(`<html>
<body>
	<h2>Manual reconciliation required</h2>
	<p>The payment provider accepted a <b>%s</b> but the shop order was not updated.</p>
	<table>
		<tr><td>Order UUID</td><td>%s</td></tr>
		<tr><td>Provider UUID</td><td>%s</td></tr>
		<tr><td>Amount</td><td>%s</td></tr>
		<tr><td>Occurred at</td><td>%s</td></tr>
		<tr><td>Local error</td><td>%s</td></tr>
	</table>
	<p>Update the order attributes manually before running further payment actions.</p>
</body>
</html>`,
		escape(d.Action), escape(d.OrderUUID), escape(d.ProviderUUID), escape(d.Amount),
		d.OccurredAt.Format(time.RFC3339), escape(d.Error))

	return n.service.Send(n.recipients, subject, htmlBody, plain)
}
