package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain password reset tokens and access token revocations",
	}

	cleanupCmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete old password reset tokens and expired revocations",
		Long: `Deletes password reset tokens created before now minus --retention
(default RESET_TOKEN_RETENTION) and revocation rows whose access token has expired.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			retention, _ := cmd.Flags().GetDuration("retention")
			if retention == 0 {
				retention = a.cfg.ResetTokenRetention
			}

			ctx := cmd.Context()
			svc, err := a.services(ctx)
			if err != nil {
				return err
			}
			resets, err := svc.PasswordReset.DeleteOldResetTokens(ctx, retention)
			if err != nil {
				return err
			}
			revoked, err := svc.TokenService.DeleteExpiredRevocations(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d reset tokens and %d expired revocations\n", resets, revoked)
			return nil
		},
	}
	cleanupCmd.Flags().Duration("retention", 0, "Keep reset tokens younger than this, e.g. 720h")

	tokensCmd.AddCommand(cleanupCmd)
	return tokensCmd
}

