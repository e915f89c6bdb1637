package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/repositories/mysql"
	"github.com/AvaneeshKarthiks/FinWise/internal/services"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
	"github.com/AvaneeshKarthiks/FinWise/pkg"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(a *app, db *gorm.DB) error {
				if err := mysql.Migrate(db); err != nil {
					return err
				}
				a.logger.Info("Database schema migrated", "driver", a.cfg.Database.Driver)
				return nil
			})
		},
	}
}

func rehashPasswordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rehash-passwords",
		Short: "Store every plain employee password as its SHA-256 digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(a *app, db *gorm.DB) error {
				repo := mysql.NewSQLRepository(mysql.RepositoryConfig{DB: db})
				employees := services.NewEmployeeService(repo, db, a.logger, validator.New())

				converted, err := employees.RehashPasswords(cmd.Context())
				if err != nil {
					return fmt.Errorf("rehash passwords: %w", err)
				}
				a.logger.Info("Employee passwords rehashed", "converted", converted)
				fmt.Fprintf(cmd.OutOrStdout(), "rehashed %d employee password(s)\n", converted)
				return nil
			})
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finwise %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// withDatabase runs fn against a fresh connection and closes it afterwards.
func withDatabase(fn func(a *app, db *gorm.DB) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	db, err := pkg.InitDatabase(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	return fn(a, db)
}
