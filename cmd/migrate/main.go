// Command migrate provisions a tenant database: creates the physical
// database if needed, brings the schema up to date, and seeds the page
// registry, the superadmin role and optionally a first admin user.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/garagehub/backend/internal/domain/identity"
	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/auth"
	"github.com/garagehub/backend/internal/infrastructure/config"
	"github.com/garagehub/backend/internal/infrastructure/logger"
	"github.com/garagehub/backend/internal/infrastructure/persistence"
	"github.com/garagehub/backend/internal/infrastructure/persistence/tenantdb"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// defaultPages is the page registry seeded into every new tenant. Paths
// match the API route prefixes the permission middleware checks against.
var defaultPages = []struct {
	name     string
	path     string
	category string
}{
	{"Users", "/users", "identity"},
	{"Roles", "/roles", "identity"},
	{"Pages", "/pages", "identity"},
	{"Permissions", "/permissions", "identity"},
	{"Expense Categories", "/expense-categories", "finance"},
	{"Expenses", "/expenses", "finance"},
	{"Incomes", "/incomes", "finance"},
	{"Products", "/products", "inventory"},
	{"Warehouses", "/warehouses", "inventory"},
	{"Stock", "/stock", "inventory"},
	{"Customers", "/customers", "garage"},
	{"Vehicles", "/vehicles", "garage"},
	{"Warranties", "/warranties", "garage"},
}

func main() {
	var (
		tenant        string
		createDB      bool
		seed          bool
		adminName     string
		adminEmail    string
		adminPassword string
		logLevel      string
	)
	flag.StringVar(&tenant, "tenant", "", "Tenant domain to provision (required)")
	flag.BoolVar(&createDB, "create-db", true, "Create the tenant database if it does not exist")
	flag.BoolVar(&seed, "seed", true, "Seed default pages and the superadmin role")
	flag.StringVar(&adminName, "admin-name", "Administrator", "Name for the initial admin user")
	flag.StringVar(&adminEmail, "admin-email", "", "Email for the initial admin user (skipped if empty)")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the initial admin user")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	domain := tenantdb.NormalizeDomain(tenant)
	if domain == "" {
		fmt.Fprintln(os.Stderr, "Usage: migrate -tenant <domain> [-create-db] [-seed] [-admin-email ... -admin-password ...]")
		os.Exit(1)
	}
	if !tenantdb.ValidDomain(domain) {
		log.Fatal("Invalid tenant domain", zap.String("tenant_domain", domain))
	}
	if adminEmail != "" && adminPassword == "" {
		log.Fatal("admin-password is required when admin-email is set")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	registry := tenantdb.NewRegistry(tenantdb.PostgresOpener(cfg.Database, gormLog), cfg.Database.DBPrefix, log)
	defer func() {
		_ = registry.CloseAll()
	}()

	dbName := registry.DatabaseName(domain)

	if createDB {
		if err := ensureDatabase(cfg.Database, dbName, gormLog); err != nil {
			log.Fatal("Failed to create tenant database", zap.String("database", dbName), zap.Error(err))
		}
		log.Info("Tenant database ready", zap.String("database", dbName))
	}

	// Resolve opens the connection and migrates the schema.
	db, err := registry.Resolve(ctx, domain)
	if err != nil {
		log.Fatal("Failed to connect to tenant database", zap.Error(err))
	}
	counts, err := tenantdb.TableCounts(ctx, db)
	if err != nil {
		log.Fatal("Failed to verify tenant schema", zap.Error(err))
	}
	log.Info("Schema up to date",
		zap.String("tenant_domain", domain),
		zap.Int("entities", len(counts)))

	if seed {
		if err := seedTenant(ctx, db, adminName, adminEmail, adminPassword, log); err != nil {
			log.Fatal("Failed to seed tenant", zap.Error(err))
		}
	}

	log.Info("Tenant provisioned", zap.String("tenant_domain", domain))
}

// ensureDatabase creates the tenant database via the maintenance database
// if it does not already exist. The name is derived from a validated
// domain, so it is safe to interpolate.
func ensureDatabase(cfg config.DatabaseConfig, dbName string, gl gormlogger.Interface) error {
	admin, err := gorm.Open(postgres.Open(cfg.DSNForDatabase("postgres")), &gorm.Config{Logger: gl})
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var count int64
	if err := admin.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return admin.Exec(fmt.Sprintf("CREATE DATABASE %q", dbName)).Error
}

// seedTenant inserts the default page registry, the superadmin role, and
// optionally a first admin user. Seeding is idempotent.
func seedTenant(ctx context.Context, db *gorm.DB, adminName, adminEmail, adminPassword string, log *zap.Logger) error {
	store := persistence.NewIdentityStore(db)

	for _, p := range defaultPages {
		exists, err := store.Pages().ExistsByPath(ctx, p.path)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		page, err := identity.NewPage(p.name, p.path, p.category)
		if err != nil {
			return err
		}
		if err := store.Pages().Create(ctx, page); err != nil {
			return err
		}
		log.Info("Seeded page", zap.String("path", p.path))
	}

	role, err := store.Roles().FindByName(ctx, "Superadmin")
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		role, err = identity.NewRole("Superadmin", identity.RoleTypeSuperadmin)
		if err != nil {
			return err
		}
		if err := store.Roles().Create(ctx, role); err != nil {
			return err
		}
		log.Info("Seeded superadmin role")
	}

	if adminEmail == "" {
		return nil
	}

	exists, err := store.Users().ExistsByEmail(ctx, adminEmail)
	if err != nil {
		return err
	}
	if exists {
		log.Info("Admin user already exists", zap.String("email", adminEmail))
		return nil
	}

	hash, err := auth.NewPasswordHasher().Hash(adminPassword)
	if err != nil {
		return err
	}
	user, err := identity.NewUser(adminName, adminEmail, hash)
	if err != nil {
		return err
	}
	user.AssignRole(role.ID)
	if err := store.Users().Create(ctx, user); err != nil {
		return err
	}
	log.Info("Seeded admin user", zap.String("email", adminEmail))
	return nil
}
