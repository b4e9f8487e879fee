package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// Dialect определяет используемую СУБД
type Dialect string

const (
	// DialectSQLite встроенная база, используется по умолчанию
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres PostgreSQL через pgx
	DialectPostgres Dialect = "postgres"
)

// ParseDialect validates a configured driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case DialectSQLite, "sqlite3":
		return DialectSQLite, nil
	case DialectPostgres, "postgresql", "pgx":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// Storage represents the relational storage implementation
type Storage struct {
	db      *sql.DB
	now     func() time.Time
	dialect Dialect
}

// New creates a new storage instance and applies migrations.
// For SQLite dsn is a file path (":memory:" works for tests);
// for PostgreSQL it is a connection URL.
func New(ctx context.Context, dialect Dialect, dsn string) (*Storage, error) {
	driverName := "sqlite"
	if dialect == DialectPostgres {
		driverName = "pgx"
	}

	// Открываем соединение с БД
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		}

		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	storage := &Storage{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}

	// Запускаем миграции
	if err := storage.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping checks database connectivity
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// runMigrations выполняет миграции из embedded FS для текущего диалекта
func (s *Storage) runMigrations(ctx context.Context) error {
	gooseDialect, dir := "sqlite3", "migrations/sqlite"
	if s.dialect == DialectPostgres {
		gooseDialect, dir = "postgres", "migrations/postgres"
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// q переписывает плейсхолдеры "?" в "$n" для PostgreSQL
// Запросы пишутся один раз в синтаксисе SQLite
func (s *Storage) q(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}

	return b.String()
}

// isUniqueViolation распознает нарушение UNIQUE для обоих драйверов
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// likePattern экранирует спецсимволы LIKE и приводит к нижнему регистру
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
