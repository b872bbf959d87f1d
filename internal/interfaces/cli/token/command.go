package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sezzlegate/internal/infrastructure/auth"
	"sezzlegate/internal/interfaces/cli/common"
	"sezzlegate/internal/shared/authorization"
)

var (
	flags   common.Flags
	subject string
	role    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Backend API token tools",
	}

	flags.Register(cmd)
	cmd.AddCommand(newIssueCommand())

	return cmd
}

func newIssueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint a backend API token",
		Long:  `Sign an access token for an operator with the given role (admin, operator, viewer).`,
		RunE:  runIssue,
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Operator id stored as the token subject (required)")
	cmd.Flags().StringVar(&role, "role", authorization.RoleViewer.String(), "Role granted by the token")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, log, err := common.LoadConfig(&flags)
	if err != nil {
		return err
	}

	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	signed, exp, err := jwtService.Generate(subject, r)
	if err != nil {
		return err
	}

	log.Infow("issued backend token", "subject", subject, "role", r, "expires_at", exp.Format(time.RFC3339))
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
