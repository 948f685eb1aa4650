package cli

import (
	"errors"
	"fmt"
	"time"

	"dispensary-loyalty/internal/core/domain"
	"dispensary-loyalty/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var errRoleRequired = errors.New("--role must be PATIENT, STAFF or ADMIN")

func newTokenCmd(env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token for a user",
		Long: `token signs an access token with the configured JWT secret. Production
tokens are issued by the identity service; use this against dev servers only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := requireIDs(cmd, "user")
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")
			switch domain.Role(role) {
			case domain.RolePatient, domain.RoleStaff, domain.RoleAdmin:
			default:
				return errRoleRequired
			}
			ttl, _ := cmd.Flags().GetDuration("ttl")

			return withRuntime(env, cmd, func(rt *Runtime) error {
				if rt.Config.IsProd() {
					return fmt.Errorf("refusing to sign tokens in prod mode")
				}
				token, err := jwt.GenerateAccessToken(ids[0], role, rt.Config.JWT.Secret, ttl)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), token)
				return nil
			})
		},
	}
	cmd.Flags().Uint("user", 0, "User ID")
	cmd.Flags().String("role", string(domain.RolePatient), "Role claim")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	return cmd
}
