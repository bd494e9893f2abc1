// Package tenantdb manages per-tenant database connections.
//
// Each tenant is identified by a domain string and owns exactly one physical
// database whose name is derived deterministically from the domain. The
// Registry caches one open connection per domain for the process lifetime and
// guards first access with a single-flight guard so concurrent first requests
// for the same tenant never open duplicate connections.
package tenantdb

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/garagehub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// domainPattern restricts tenant domains to DNS-label style strings
var domainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Resolver resolves a tenant domain to an open database connection
type Resolver interface {
	Resolve(ctx context.Context, tenantDomain string) (*gorm.DB, error)
}

// Opener opens a connection to the named database
type Opener func(ctx context.Context, dbName string) (*gorm.DB, error)

// PostgresOpener returns an Opener backed by the configured postgres server
func PostgresOpener(cfg config.DatabaseConfig, gl gormlogger.Interface) Opener {
	return func(ctx context.Context, dbName string) (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(cfg.DSNForDatabase(dbName)), &gorm.Config{
			Logger:                 gl,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
		if err != nil {
			return nil, err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		configurePool(sqlDB, cfg)

		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return db, nil
	}
}

// configurePool applies the configured connection pool limits. Lifetime
// settings are in minutes, matching the config file units.
func configurePool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// Registry maps tenant domains to open database connections.
// At most one connection exists per domain; connections live for the
// process lifetime.
type Registry struct {
	opener Opener
	prefix string
	log    *zap.Logger

	mu      sync.Mutex
	entries map[string]*connEntry
}

type connEntry struct {
	once sync.Once
	db   *gorm.DB
	err  error
}

// NewRegistry creates a tenant connection registry
func NewRegistry(opener Opener, dbPrefix string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		opener:  opener,
		prefix:  dbPrefix,
		log:     log.Named("tenantdb"),
		entries: make(map[string]*connEntry),
	}
}

// NormalizeDomain lowercases and trims a tenant domain string
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// ValidDomain reports whether the domain is an acceptable tenant identifier
func ValidDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

// DatabaseName derives the physical database name for a tenant domain
func (r *Registry) DatabaseName(domain string) string {
	return r.prefix + "_" + strings.ReplaceAll(domain, "-", "_")
}

// Resolve returns the open connection for the tenant domain, opening and
// migrating it on first access. Opening failures are surfaced as
// TENANT_CONNECTION errors and are not cached, so a later request retries.
func (r *Registry) Resolve(ctx context.Context, tenantDomain string) (*gorm.DB, error) {
	domain := NormalizeDomain(tenantDomain)
	if domain == "" {
		return nil, shared.ErrTenantRequired
	}
	if !ValidDomain(domain) {
		return nil, shared.NewDomainErrorf("INVALID_INPUT", "invalid tenant domain %q", tenantDomain)
	}

	r.mu.Lock()
	entry, ok := r.entries[domain]
	if !ok {
		entry = &connEntry{}
		r.entries[domain] = entry
	}
	r.mu.Unlock()

	entry.once.Do(func() {
		dbName := r.DatabaseName(domain)
		r.log.Info("opening tenant database",
			zap.String("tenant_domain", domain),
			zap.String("database", dbName),
		)
		db, err := r.opener(ctx, dbName)
		if err != nil {
			entry.err = err
			return
		}
		if err := EnsureSchema(db); err != nil {
			entry.err = err
			return
		}
		entry.db = db
	})

	if entry.err != nil {
		err := entry.err
		// Drop the failed entry so the next request retries the connection.
		r.mu.Lock()
		if r.entries[domain] == entry {
			delete(r.entries, domain)
		}
		r.mu.Unlock()
		r.log.Error("tenant connection failed",
			zap.String("tenant_domain", domain),
			zap.Error(err),
		)
		return nil, shared.NewDomainErrorf("TENANT_CONNECTION",
			"unable to connect to database for tenant %q", domain)
	}
	return entry.db, nil
}

// Domains returns the domains with open connections
func (r *Registry) Domains() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	domains := make([]string, 0, len(r.entries))
	for d, e := range r.entries {
		if e.db != nil {
			domains = append(domains, d)
		}
	}
	return domains
}

// CloseAll closes every open tenant connection. Used during shutdown.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for domain, entry := range r.entries {
		if entry.db == nil {
			continue
		}
		sqlDB, err := entry.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.entries, domain)
	}
	return firstErr
}
