package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eventpay/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer e.db.Close()
			return applyMigrations(cmd.Context(), e)
		},
	}
}

func applyMigrations(ctx context.Context, e *env) error {
	if err := migrations.Apply(ctx, e.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	e.logger.Info("migrations applied")
	return nil
}
