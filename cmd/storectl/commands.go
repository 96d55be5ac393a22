// cmd/storectl/commands.go
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/infrastructure/database/gormdb"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/email"
	"golang.org/x/crypto/bcrypt"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database()
			if err != nil {
				return err
			}

			m := gormdb.NewMigration(db.GetDB(), a.log)
			if err := m.RunAutoMigrations(); err != nil {
				return err
			}
			if err := m.CreateIndexes(); err != nil {
				a.log.WithError(err).Warn("index creation failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var withAdmin bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reconcile the flash catalog and optionally the configured admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogService, err := a.catalog()
			if err != nil {
				return err
			}
			customerService, err := a.customers()
			if err != nil {
				return err
			}

			admin := a.cfg.Admin
			if !withAdmin {
				admin.Email = ""
			}

			m := gormdb.NewMigration(a.db.GetDB(), a.log)
			if err := m.SeedInitialData(catalogService, customerService, admin); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "flash catalog reconciled (%d products)\n", len(catalogService.Flash().All()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withAdmin, "admin", false, "also create the admin account from ADMIN_* settings")
	return cmd
}

func newCreateAdminCmd(a *app) *cobra.Command {
	var username, mail, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customerService, err := a.customers()
			if err != nil {
				return err
			}

			c, err := customerService.EnsureAdmin(username, mail, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s (id %d) ready\n", c.Email, c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "display name for a new account")
	cmd.Flags().StringVar(&mail, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "password for a new account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt digest of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pm := auth.NewPasswordManagerWithCost(cost)
			if err := pm.ValidatePassword(args[0]); err != nil {
				return err
			}

			digest, err := pm.HashPassword(args[0])
			if err != nil {
				return err
			}
			if !pm.VerifyPassword(digest, args[0]) {
				return fmt.Errorf("hash verification failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), digest)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func newOrderStatusCmd(a *app) *cobra.Command {
	var comment string
	var actor uint

	cmd := &cobra.Command{
		Use:   "order-status <order-id> <status>",
		Short: "Move an order to the next status",
		Long:  "Statuses: Order Placed, Processing, Shipped, Out for Delivery, Delivered",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			db, err := a.database()
			if err != nil {
				return err
			}

			orders := order.NewService(db.GetDB(), a.log, nil)
			o, err := orders.SetStatus(cmd.Context(), uint(id), args[1], actor, comment)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %d is now %s\n", o.ID, o.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "note stored in the status history")
	cmd.Flags().UintVar(&actor, "actor", 0, "customer id recorded as the actor")
	return cmd
}

func newSendTestEmailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send-test-email <to>",
		Short: "Send a test message through the configured email provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}

			mailer, err := email.NewEmailService(cfg, a.log)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := mailer.SendTestEmail(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "test email sent to %s via %s\n", args[0], cfg.External.Email.Provider)
			return nil
		},
	}
}
