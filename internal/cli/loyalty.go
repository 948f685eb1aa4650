package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func requireIDs(cmd *cobra.Command, names ...string) ([]uint, error) {
	ids := make([]uint, len(names))
	for i, name := range names {
		id, err := cmd.Flags().GetUint(name)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, fmt.Errorf("--%s is required", name)
		}
		ids[i] = id
	}
	return ids, nil
}

func newVisitCmd(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Record a patient visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(cmd, "user", "dispensary")
			if err != nil {
				return err
			}
			return withRuntime(env, cmd, func(rt *Runtime) error {
				outcome, err := rt.Visits.RecordVisit(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Membership %d: %d points (tier %s), visit #%d\n",
					outcome.Membership.ID, outcome.Membership.Points, outcome.Tier, outcome.VisitCount)
				if outcome.ShouldPromptInviteFriend {
					fmt.Fprintln(out, "Prompt the patient to invite a friend.")
				}
				return nil
			})
		},
	}
	cmd.Flags().Uint("user", 0, "User ID")
	cmd.Flags().Uint("dispensary", 0, "Dispensary ID")
	return cmd
}

func newRedeemCmd(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Spend a membership's points on a deal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(cmd, "membership", "deal")
			if err != nil {
				return err
			}
			return withRuntime(env, cmd, func(rt *Runtime) error {
				redemption, err := rt.Visits.Redeem(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				view, err := rt.Memberships.GetMembershipByID(cmd.Context(), ids[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Redemption %d: spent %d points, %d left\n",
					redemption.ID, redemption.DealPoints, view.Points)
				return nil
			})
		},
	}
	cmd.Flags().Uint("membership", 0, "Membership ID")
	cmd.Flags().Uint("deal", 0, "Deal ID")
	return cmd
}

func newTierCmd(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Show a patient's balance and reward tier at a dispensary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(cmd, "user", "dispensary")
			if err != nil {
				return err
			}
			return withRuntime(env, cmd, func(rt *Runtime) error {
				view, err := rt.Memberships.GetMembership(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				tiers := view.Dispensary.Tiers
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d points, tier %s (small %d / medium %d / large %d)\n",
					view.Dispensary.Name, view.Points, view.Tier, tiers.Small, tiers.Medium, tiers.Large)
				return nil
			})
		},
	}
	cmd.Flags().Uint("user", 0, "User ID")
	cmd.Flags().Uint("dispensary", 0, "Dispensary ID")
	return cmd
}

func newSignupCmd(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a patient at the counter with sign-up points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(cmd, "user", "dispensary")
			if err != nil {
				return err
			}
			return withRuntime(env, cmd, func(rt *Runtime) error {
				membership, err := rt.Memberships.CreateForInStoreSignup(cmd.Context(), ids[0], ids[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Membership %d created with %d points\n", membership.ID, membership.Points)
				return nil
			})
		},
	}
	cmd.Flags().Uint("user", 0, "User ID")
	cmd.Flags().Uint("dispensary", 0, "Dispensary ID")
	return cmd
}
