package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"p9e.in/lms/config"
	"p9e.in/lms/models"
	"p9e.in/lms/pkg/organization"
	"p9e.in/lms/pkg/storage"
)

func newMigrate() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := config.Migrations(db); err != nil {
				return fmt.Errorf("could not run migrations: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newCheckDB() *cobra.Command {
	return &cobra.Command{
		Use:   "check-db",
		Short: "Report table presence and the most recent organizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)
			return checkDB(cmd.Context(), db, cmd.OutOrStdout())
		},
	}
}

// checkDB prints which registration tables exist, the organization count
// and the five newest organizations.
func checkDB(ctx context.Context, db *gorm.DB, out io.Writer) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	fmt.Fprintln(out, "database connection successful")

	missing := 0
	stmt := &gorm.Statement{DB: db}
	for _, table := range models.All() {
		if err := stmt.Parse(table); err != nil {
			return err
		}
		name := stmt.Schema.Table
		if db.Migrator().HasTable(table) {
			fmt.Fprintf(out, "  [ok]      %s\n", name)
		} else {
			fmt.Fprintf(out, "  [missing] %s\n", name)
			missing++
		}
	}
	if missing > 0 {
		fmt.Fprintf(out, "%d tables missing, run `lms migrate`\n", missing)
		return nil
	}

	svc := organization.NewService(db)
	count, err := svc.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total organizations: %d\n", count)
	if count == 0 {
		return nil
	}

	recent, err := svc.Recent(ctx, 5)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "recent organizations:")
	for _, o := range recent {
		fmt.Fprintf(out, "  %s  %s  (%s, %s)  status=%s  created=%s\n",
			o.ID, o.LabName, o.LabCity, o.LabState, o.Status, o.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func newClearData() *cobra.Command {
	var yes bool
	c := &cobra.Command{
		Use:   "clear-data",
		Short: "Delete every organization and reset the local upload folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear data without --yes")
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			var local *storage.Local
			if cfg.Upload.StorageType == "local" {
				local, err = storage.NewLocal(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
				if err != nil {
					return err
				}
			}
			return clearData(cmd.Context(), organization.NewService(db), local, cmd.OutOrStdout())
		},
	}
	c.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all data")
	return c
}

// clearData purges the registry and, when local is set, empties the
// upload root back to its standard folders.
func clearData(ctx context.Context, svc *organization.Service, local *storage.Local, out io.Writer) error {
	removed, err := svc.Purge(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %d organizations\n", removed)

	if local == nil {
		fmt.Fprintln(out, "remote storage configured, uploaded objects left in place")
		return nil
	}
	if err := local.Reset(storage.FolderLogos, storage.FolderDocuments); err != nil {
		return fmt.Errorf("reset uploads: %w", err)
	}
	fmt.Fprintf(out, "upload folder %s reset\n", local.Root())
	return nil
}
