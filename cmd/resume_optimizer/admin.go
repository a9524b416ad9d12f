package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var adminRevoke bool

var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin <email>",
	Short: "Grant the admin role to an account",
	Long: `Grant the admin role to the account with the given email. Admins manage
the shared prompt registry through the API. Use --revoke to take the role away.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrantAdmin,
}

func init() {
	grantAdminCmd.Flags().BoolVar(&adminRevoke, "revoke", false, "revoke the admin role instead")
	rootCmd.AddCommand(grantAdminCmd)
}

func runGrantAdmin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	database, err := connectFromEnv(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	email := args[0]
	profile, err := database.GetProfileByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no account with email %q", email)
	}

	if err := database.SetAdmin(ctx, profile.ID, !adminRevoke); err != nil {
		return fmt.Errorf("failed to update admin role: %w", err)
	}

	if adminRevoke {
		fmt.Printf("revoked admin role from %s\n", email)
	} else {
		fmt.Printf("granted admin role to %s\n", email)
	}
	return nil
}
