// cmd/storectl/root.go
package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/customer"
	"github.com/your-org/storefront/internal/infrastructure/database/gormdb"
	"github.com/your-org/storefront/internal/pkg/auth"
	"github.com/your-org/storefront/internal/pkg/logger"
)

// app holds what the subcommands share, opened on first use
type app struct {
	load func() (*config.Config, error)
	cfg  *config.Config
	log  *logrus.Logger
	db   *gormdb.DB
}

func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	a := &app{load: load}

	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Operate the storefront database and services",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newCreateAdminCmd(a),
		newHashPasswordCmd(),
		newOrderStatusCmd(a),
		newSendTestEmailCmd(a),
	)
	return root
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := a.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(cfg)
	return cfg, nil
}

func (a *app) database() (*gormdb.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	db, err := gormdb.NewConnection(cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) customers() (*customer.Service, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return customer.NewService(db.GetDB(), auth.NewPasswordManager(a.cfg), nil, a.log), nil
}

func (a *app) catalog() (*catalog.Service, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}

	flash := catalog.DefaultFlashCatalog()
	if path := a.cfg.Catalog.FlashCatalogPath; path != "" {
		if flash, err = catalog.LoadFlashCatalog(path); err != nil {
			return nil, err
		}
	}
	return catalog.NewService(db.GetDB(), flash, nil, a.log), nil
}
