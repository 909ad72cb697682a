package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/smallbiznis/fmis/internal/audit/domain"
	"github.com/smallbiznis/fmis/internal/communitytax"
	disbursementdomain "github.com/smallbiznis/fmis/internal/disbursement/domain"
	"github.com/smallbiznis/fmis/internal/docnumber"
	obligationdomain "github.com/smallbiznis/fmis/internal/obligation/domain"
	refdomain "github.com/smallbiznis/fmis/internal/reference/domain"
	taxdomain "github.com/smallbiznis/fmis/internal/tax/domain"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{
		&taxdomain.TaxCode{},
		&refdomain.Department{},
		&refdomain.FiscalYear{},
		&refdomain.Employee{},
		&refdomain.Vendor{},
		&docnumber.Sequence{},
		&obligationdomain.ObligationRequest{},
		&disbursementdomain.Voucher{},
		&communitytax.Certificate{},
		&auditdomain.AuditLog{},
	}
}

// RunMigrations applies the embedded postgres migrations.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate creates the schema from the gorm models. Used for the
// sqlite and mysql dialects, which the SQL migrations do not target.
func AutoMigrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	return conn.AutoMigrate(Models()...)
}
