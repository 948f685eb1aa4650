package cli

import (
	"fmt"

	"dispensary-loyalty/internal/adapters/persistence/models"
	"dispensary-loyalty/internal/config"

	"github.com/spf13/cobra"
)

func newMigrateCmd(env Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the loyalty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(env, cmd, func(rt *Runtime) error {
				if err := models.AutoMigrate(rt.DB); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migration completed.")
				return nil
			})
		},
	}
}

func newSeedCmd(env Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo dispensaries, deals and users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(env, cmd, func(rt *Runtime) error {
				if err := config.NewSeeder(rt.DB, rt.Log).Run(); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Seeding completed.")
				return nil
			})
		},
	}
}
