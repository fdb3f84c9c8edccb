package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/location-resolver/app/models"
)

// Store is the SQLite-backed Lookup implementation. All methods are
// read-only; concurrent use is safe.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens the lookup store at path. Use ":memory:" for tests.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open lookup store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping lookup store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sql.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Init applies the schema. The production store is provisioned by the
// seedstore job; this exists for in-memory fixtures.
func (s *Store) Init() error {
	_, err := s.db.Exec(Schema)
	return err
}

// DB exposes the underlying handle for the seedstore loader.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

const priorityColumns = `location_id, location_name, municipality_id, municipality_name,
	state_id, state_name, normalized_name, priority_level`

func (s *Store) FindPriorityByNormalizedName(ctx context.Context, name string) (*models.PriorityLocationEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+priorityColumns+`
		FROM priority_locations
		WHERE normalized_name = ?
		ORDER BY priority_level ASC
		LIMIT 1`, name)
	return scanPriorityEntry(row)
}

func (s *Store) SearchPriorityLike(ctx context.Context, wordPatterns []string, stateID *uint64) ([]models.PriorityLocationEntry, error) {
	if len(wordPatterns) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + priorityColumns + ` FROM priority_locations WHERE 1=1`)
	args := make([]any, 0, len(wordPatterns)+1)
	for _, w := range wordPatterns {
		sb.WriteString(" AND normalized_name LIKE ?")
		args = append(args, "%"+w+"%")
	}
	if stateID != nil {
		sb.WriteString(" AND state_id = ?")
		args = append(args, *stateID)
	}
	sb.WriteString(" ORDER BY priority_level ASC, normalized_name ASC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search priority like: %w", err)
	}
	defer rows.Close()
	return collectPriorityEntries(rows)
}

func (s *Store) ListAllPriority(ctx context.Context) ([]models.PriorityLocationEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+priorityColumns+`
		FROM priority_locations
		ORDER BY priority_level ASC`)
	if err != nil {
		return nil, fmt.Errorf("list priority: %w", err)
	}
	defer rows.Close()
	return collectPriorityEntries(rows)
}

func (s *Store) FindMunicipalityExact(ctx context.Context, stateID uint64, normalizedName string) (*models.Municipality, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.normalized_name, m.state_id, st.name
		FROM municipalities m
		JOIN states st ON st.id = m.state_id
		WHERE m.state_id = ? AND m.normalized_name = ?
		LIMIT 1`, stateID, normalizedName)
	return scanMunicipality(row)
}

func (s *Store) SearchMunicipalityLike(ctx context.Context, stateID uint64, pattern string) (*models.Municipality, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.normalized_name, m.state_id, st.name
		FROM municipalities m
		JOIN states st ON st.id = m.state_id
		WHERE m.state_id = ? AND m.normalized_name LIKE ?
		ORDER BY length(m.normalized_name) ASC
		LIMIT 1`, stateID, "%"+pattern+"%")
	return scanMunicipality(row)
}

func (s *Store) FindLocationExact(ctx context.Context, normalizedName string) (*models.CanonicalLocation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT l.id, l.name, m.id, m.name, st.id, st.name
		FROM locations l
		JOIN municipalities m ON m.id = l.municipality_id
		JOIN states st ON st.id = m.state_id
		WHERE l.normalized_name = ?
		LIMIT 1`, normalizedName)

	var loc models.CanonicalLocation
	err := row.Scan(&loc.LocationID, &loc.LocationName, &loc.MunicipalityID,
		&loc.MunicipalityName, &loc.StateID, &loc.StateName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location exact: %w", err)
	}
	return &loc, nil
}

func (s *Store) SearchLocationsScoped(ctx context.Context, stateID, municipalityID *uint64, limit int) ([]models.CanonicalLocation, error) {
	if limit <= 0 {
		limit = 50
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT l.id, l.name, m.id, m.name, st.id, st.name
		FROM locations l
		JOIN municipalities m ON m.id = l.municipality_id
		JOIN states st ON st.id = m.state_id
		WHERE 1=1`)
	var args []any
	if stateID != nil {
		sb.WriteString(" AND st.id = ?")
		args = append(args, *stateID)
	}
	if municipalityID != nil {
		sb.WriteString(" AND m.id = ?")
		args = append(args, *municipalityID)
	}
	sb.WriteString(" ORDER BY l.id ASC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search locations scoped: %w", err)
	}
	defer rows.Close()

	var out []models.CanonicalLocation
	for rows.Next() {
		var loc models.CanonicalLocation
		if err := rows.Scan(&loc.LocationID, &loc.LocationName, &loc.MunicipalityID,
			&loc.MunicipalityName, &loc.StateID, &loc.StateName); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

func scanPriorityEntry(row *sql.Row) (*models.PriorityLocationEntry, error) {
	var e models.PriorityLocationEntry
	err := row.Scan(&e.LocationID, &e.LocationName, &e.MunicipalityID, &e.MunicipalityName,
		&e.StateID, &e.StateName, &e.NormalizedName, &e.PriorityLevel)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan priority entry: %w", err)
	}
	return &e, nil
}

func collectPriorityEntries(rows *sql.Rows) ([]models.PriorityLocationEntry, error) {
	var out []models.PriorityLocationEntry
	for rows.Next() {
		var e models.PriorityLocationEntry
		if err := rows.Scan(&e.LocationID, &e.LocationName, &e.MunicipalityID, &e.MunicipalityName,
			&e.StateID, &e.StateName, &e.NormalizedName, &e.PriorityLevel); err != nil {
			return nil, fmt.Errorf("scan priority entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanMunicipality(row *sql.Row) (*models.Municipality, error) {
	var m models.Municipality
	err := row.Scan(&m.ID, &m.Name, &m.NormalizedName, &m.StateID, &m.StateName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan municipality: %w", err)
	}
	return &m, nil
}
