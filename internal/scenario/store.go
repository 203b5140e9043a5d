package scenario

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"portfoliosim/internal/config"
)

// Info describes one stored scenario without its configuration payload.
type Info struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a named scenario library backed by SQLite. It holds assumption
// sets (full configurations) only; simulation output is never written here.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the scenario database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] scenario store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS scenarios (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		config     TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	return err
}

// Save stores cfg under the given name, overwriting any scenario already
// stored with that name. Returns the scenario id.
func (s *Store) Save(name string, cfg *config.Config) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal scenario %q: %w", name, err)
	}

	id := ""
	err = s.db.QueryRow(`SELECT id FROM scenarios WHERE name = ?`, name).Scan(&id)
	switch err {
	case nil:
		// existing scenario keeps its id
	case sql.ErrNoRows:
		id = uuid.NewString()
	default:
		return "", fmt.Errorf("lookup scenario %q: %w", name, err)
	}

	now := time.Now().Unix()
	_, err = s.db.Exec(`INSERT INTO scenarios (id, name, config, created_at, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(name) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at`,
		id, name, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("save scenario %q: %w", name, err)
	}
	return id, nil
}

// Load returns the configuration stored under the given name.
func (s *Store) Load(name string) (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data string
	err := s.db.QueryRow(`SELECT config FROM scenarios WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", name, err)
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal([]byte(data), cfg); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", name, err)
	}
	return cfg, nil
}

// List returns metadata for every stored scenario, most recently updated
// first.
func (s *Store) List() ([]Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, name, created_at, updated_at FROM scenarios ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var created, updated int64
		if err := rows.Scan(&info.ID, &info.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		info.CreatedAt = time.Unix(created, 0)
		info.UpdatedAt = time.Unix(updated, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes the scenario stored under the given name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM scenarios WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete scenario %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("scenario %q not found", name)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
