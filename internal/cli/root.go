// Package cli implements loyaltyctl, the operator tool for the loyalty
// database.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the loyaltyctl command tree
func NewRootCmd(env Environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "loyaltyctl",
		Short: "Operate the dispensary loyalty ledger",
		Long: `loyaltyctl runs migrations and seeds, and drives the loyalty workflows
(visits, redemptions, in-store signups) directly against the database.

Configuration is read the same way as the API server: .env, then APP_MODE
prefixed environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newMigrateCmd(env),
		newSeedCmd(env),
		newVisitCmd(env),
		newRedeemCmd(env),
		newTierCmd(env),
		newSignupCmd(env),
		newTokenCmd(env),
	)
	return root
}

// Execute runs loyaltyctl against the configured database
func Execute(version string) error {
	root := NewRootCmd(ConfiguredEnvironment())
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
