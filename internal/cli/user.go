package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"eventpay/internal/adapters/auth"
	"eventpay/internal/clock"
	"eventpay/internal/domain"
	"eventpay/internal/repository/postgres"
	"eventpay/internal/services"
)

func userService(e *env) domain.UserService {
	return services.NewUserService(
		postgres.NewUserRepository(e.db),
		auth.NewJWTIssuer(e.cfg.JWTSecret),
		e.cfg.JWTExpiry,
		clock.NewSystem(),
	)
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var email, name, role string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()

			user, err := userService(e).Register(cmd.Context(), email, name, domain.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "email address")
	createCmd.Flags().StringVar(&name, "name", "", "display name")
	createCmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "USER, HOST or ADMIN")
	_ = createCmd.MarkFlagRequired("email")

	userCmd.AddCommand(createCmd)
	return userCmd
}

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bearer tokens",
	}

	issueCmd := &cobra.Command{
		Use:   "issue <user-id>",
		Short: "Mint a bearer token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()
			if e.cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}

			token, err := userService(e).IssueToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}
