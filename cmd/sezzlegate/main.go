package main

import (
	"os"

	"github.com/spf13/cobra"

	"sezzlegate/internal/interfaces/cli/configcmd"
	"sezzlegate/internal/interfaces/cli/migrate"
	"sezzlegate/internal/interfaces/cli/order"
	"sezzlegate/internal/interfaces/cli/server"
	"sezzlegate/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "sezzlegate",
		Short:        "sezzlegate - Sezzle payment gateway integration",
		Long:         `sezzlegate opens Sezzle checkout sessions for a storefront and lets backend operators capture, release and refund authorized orders.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		order.NewCommand(),
		token.NewCommand(),
		configcmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
