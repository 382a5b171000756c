package main

import (
	"fmt"

	"tokoadmin/internal/bootstrap"
	"tokoadmin/internal/config"
	"tokoadmin/internal/services"

	"github.com/spf13/cobra"
)

func newCreateAdminCmd() *cobra.Command {
	var in services.AdminInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator or promote an existing account",
		Long: "Create an administrator account. If the email is already registered the\n" +
			"account is promoted to admin, reactivated and given the new password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBDriver == config.DriverMemory {
				return fmt.Errorf("create-admin needs a persistent database, DB_DRIVER is %s", cfg.DBDriver)
			}

			rt, err := bootstrap.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, created, err := rt.Auth.EnsureAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Admin user %s created (ID: %s)\n", user.Email, user.ID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "User %s promoted to admin (ID: %s)\n", user.Email, user.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "Admin", "Display name")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Admin email (required)")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Admin password (required)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}
