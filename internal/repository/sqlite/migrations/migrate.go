package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.sql
var sqlFiles embed.FS

// GoMigrationFunc runs a data migration inside the migration transaction.
type GoMigrationFunc func(tx *sql.Tx) error

// Migration is one numbered step. Exactly one of Up or UpFn is set.
type Migration struct {
	Version int
	Up      string
	Down    string
	UpFn    GoMigrationFunc
	DownFn  GoMigrationFunc
}

func (m Migration) apply(tx *sql.Tx) error {
	if m.UpFn != nil {
		return m.UpFn(tx)
	}
	_, err := tx.Exec(m.Up)
	return err
}

var registered = map[int]Migration{}

// RegisterGoMigration adds a migration written in Go. Call it from init.
func RegisterGoMigration(version int, up, down GoMigrationFunc) {
	registered[version] = Migration{Version: version, UpFn: up, DownFn: down}
}

const bookkeepingTable = `CREATE TABLE IF NOT EXISTS migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	dirty BOOLEAN DEFAULT FALSE
)`

// RunMigrations brings the schema up to the newest version. Each step is
// recorded as dirty before it runs and cleared in the same transaction as
// its changes, so an interrupted step blocks later runs until repaired.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(bookkeepingTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	dirty, err := versions(db, "SELECT version FROM migrations WHERE dirty ORDER BY version")
	if err != nil {
		return fmt.Errorf("read migration state: %w", err)
	}
	if len(dirty) != 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}

	done, err := versions(db, "SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	seen := make(map[int]struct{}, len(done))
	for _, v := range done {
		seen[v] = struct{}{}
	}

	all, err := collect()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	for _, m := range all {
		if _, ok := seen[m.Version]; ok {
			continue
		}
		if err := step(db, m); err != nil {
			return fmt.Errorf("migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// collect merges the embedded SQL files with the Go migrations, ordered by version.
func collect() ([]Migration, error) {
	ups, err := fs.Glob(sqlFiles, "*.up.sql")
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]Migration, len(ups)+len(registered))
	for _, name := range ups {
		version, ok := parseVersion(name)
		if !ok {
			continue
		}
		up, err := sqlFiles.ReadFile(name)
		if err != nil {
			return nil, err
		}
		down, err := sqlFiles.ReadFile(strings.TrimSuffix(name, ".up.sql") + ".down.sql")
		if err != nil {
			return nil, err
		}
		byVersion[version] = Migration{Version: version, Up: string(up), Down: string(down)}
	}
	for version, m := range registered {
		if _, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("version %d has both a SQL and a Go migration", version)
		}
		byVersion[version] = m
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func step(db *sql.DB, m Migration) error {
	if _, err := db.Exec("INSERT INTO migrations (version, dirty) VALUES (?, TRUE)", m.Version); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := m.apply(tx); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE migrations SET dirty = FALSE WHERE version = ?", m.Version); err != nil {
		return err
	}
	return tx.Commit()
}

func versions(db *sql.DB, query string) ([]int, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// parseVersion reads the numeric prefix of names like 000003_task_indexes.up.sql.
func parseVersion(name string) (int, bool) {
	prefix, _, found := strings.Cut(name, "_")
	if !found {
		return 0, false
	}
	v, err := strconv.Atoi(prefix)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
