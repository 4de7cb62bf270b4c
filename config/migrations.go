package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/lms/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "14102025_create_organization_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(models.All()...)
			},
			Rollback: func(tx *gorm.DB) error {
				tables := models.Children()
				tables = append(tables, &models.Organization{})
				return tx.Migrator().DropTable(tables...)
			},
		},
		{
			ID: "14102025_add_organization_created_at_index",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.Organization{}, "idx_organizations_created_at") {
					return nil
				}
				return tx.Exec("CREATE INDEX idx_organizations_created_at ON organizations (created_at)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.Organization{}, "idx_organizations_created_at")
			},
		},
	})

	return m.Migrate()
}
