package order

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"sezzlegate/internal/application/payment/usecases"
	"sezzlegate/internal/infrastructure/database"
	"sezzlegate/internal/interfaces/cli/common"
	httpRouter "sezzlegate/internal/interfaces/http"
)

var (
	flags     common.Flags
	orderUUID string
	amount    string
	currency  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Run backend payment actions on an order",
		Long:  `Inspect an order and release, capture or refund amounts at the provider, exactly as the backend API does.`,
	}

	flags.Register(cmd)
	cmd.PersistentFlags().StringVar(&orderUUID, "uuid", "", "Provider order uuid (required)")
	_ = cmd.MarkPersistentFlagRequired("uuid")

	cmd.AddCommand(
		newShowCommand(),
		newActionCommand("release", "Release part or all of the authorization", func(p *httpRouter.PaymentUseCases, cmd *cobra.Command, a decimal.Decimal) usecases.Result {
			return p.ReleaseOrder.Execute(cmd.Context(), usecases.ReleaseOrderCommand{OrderUUID: orderUUID, Amount: a, Currency: currency})
		}),
		newActionCommand("capture", "Capture part or all of the authorization", func(p *httpRouter.PaymentUseCases, cmd *cobra.Command, a decimal.Decimal) usecases.Result {
			return p.CaptureOrder.Execute(cmd.Context(), usecases.CaptureOrderCommand{OrderUUID: orderUUID, Amount: a, Currency: currency})
		}),
		newActionCommand("refund", "Refund a captured amount", func(p *httpRouter.PaymentUseCases, cmd *cobra.Command, a decimal.Decimal) usecases.Result {
			return p.RefundOrder.Execute(cmd.Context(), usecases.RefundOrderCommand{OrderUUID: orderUUID, Amount: a, Currency: currency})
		}),
	)

	return cmd
}

type actionFunc func(p *httpRouter.PaymentUseCases, cmd *cobra.Command, amount decimal.Decimal) usecases.Result

func newActionCommand(use, short string, run actionFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			return withPayments(func(p *httpRouter.PaymentUseCases) error {
				result := run(p, cmd, value)
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if !result.Success {
					return fmt.Errorf("%s failed: %s", use, result.Message)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount in the order currency (required)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO 4217 currency code")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the order with its provider transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPayments(func(p *httpRouter.PaymentUseCases) error {
				o, err := p.GetOrder.Execute(cmd.Context(), orderUUID)
				if err != nil {
					return err
				}
				return printJSON(cmd, o)
			})
		},
	}
}

func withPayments(fn func(p *httpRouter.PaymentUseCases) error) error {
	cfg, log, err := common.InitDatabase(&flags)
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return err
	}
	defer container.Shutdown()

	return fn(container.Payments())
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
