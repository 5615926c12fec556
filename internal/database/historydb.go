package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/readscore/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "readscore.db"

// timestampLayout is how analysis times are stored. It matches SQLite's
// CURRENT_TIMESTAMP so both sort the same way.
const timestampLayout = "2006-01-02 15:04:05"

// HistoryDB provides SQLite-based storage for analysis history.
//
// Design decision: Each analysis is stored whole as JSON rather than
// normalized into per-metric rows. Reports are re-rendered from the stored
// JSON, and only the columns used for lookup are broken out.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL,
		digest TEXT,
		selector TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		mean_age REAL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_path ON analyses(path);
	CREATE INDEX IF NOT EXISTS idx_analyses_digest ON analyses(digest);
	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// ErrNilAnalysis is returned when SaveAnalysis is called without an analysis.
var ErrNilAnalysis = errors.New("analysis is nil")

// SaveAnalysis stores an analysis and returns its database ID.
// The mean age column is NULL unless the mean is defined.
func (hdb *HistoryDB) SaveAnalysis(ctx context.Context, analysis *model.Analysis) (int64, error) {
	if analysis == nil {
		return 0, ErrNilAnalysis
	}

	reportJSON, err := json.Marshal(analysis)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize analysis: %w", err)
	}

	var meanAge sql.NullFloat64
	if analysis.MeanDefined {
		meanAge = sql.NullFloat64{Float64: analysis.MeanAge, Valid: true}
	}

	query := `
	INSERT INTO analyses (run_id, path, digest, selector, timestamp, mean_age, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		analysis.ID,
		analysis.Path,
		analysis.Digest,
		analysis.Selector.String(),
		analysis.DateAnalyzed.UTC().Format(timestampLayout),
		meanAge,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}

	return result.LastInsertId()
}

// GetLatestAnalysis retrieves the most recent analysis of a document.
// It returns nil, nil when the document has no history.
func (hdb *HistoryDB) GetLatestAnalysis(ctx context.Context, path string) (*model.Analysis, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE path = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`
	return hdb.queryOne(ctx, query, path)
}

// GetAnalysisByID retrieves an analysis by its database ID.
// It returns nil, nil when no such analysis exists.
func (hdb *HistoryDB) GetAnalysisByID(ctx context.Context, id int64) (*model.Analysis, error) {
	query := `
	SELECT report_json FROM analyses
	WHERE id = ?
	`
	return hdb.queryOne(ctx, query, id)
}

func (hdb *HistoryDB) queryOne(ctx context.Context, query string, arg any) (*model.Analysis, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, arg).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(reportJSON), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &analysis, nil
}

// ListDocuments returns every document path that has history, sorted.
func (hdb *HistoryDB) ListDocuments(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT path FROM analyses
	ORDER BY path
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, rows.Err()
}

// AnalysisMetadata contains summary information about a stored analysis.
// This is used for displaying history without loading the full record.
type AnalysisMetadata struct {
	// ID is the database ID, used with GetAnalysisByID.
	ID int64 `json:"id"`

	// RunID is the analysis UUID.
	RunID string `json:"run_id"`

	// Path is the analyzed document.
	Path string `json:"path"`

	// Digest is the SHA3-256 of the analyzed text.
	Digest string `json:"digest"`

	// Selector is the metric dispatch token.
	Selector string `json:"selector"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`

	// MeanAge is the mean reader age; valid only when MeanDefined is true.
	MeanAge float64 `json:"mean_age,omitempty"`

	// MeanDefined reports whether the analysis had a mean age.
	MeanDefined bool `json:"mean_defined"`
}

// GetHistoryWithMetadata retrieves analysis metadata for a document, newest first.
func (hdb *HistoryDB) GetHistoryWithMetadata(ctx context.Context, path string) ([]AnalysisMetadata, error) {
	query := `
	SELECT id, run_id, path, digest, selector, timestamp, mean_age
	FROM analyses
	WHERE path = ?
	ORDER BY timestamp DESC, id DESC
	`
	return hdb.queryMetadata(ctx, query, path)
}

// FindByDigest returns metadata for every analysis of identical text,
// regardless of the path it was read from. Newest first.
func (hdb *HistoryDB) FindByDigest(ctx context.Context, digest string) ([]AnalysisMetadata, error) {
	query := `
	SELECT id, run_id, path, digest, selector, timestamp, mean_age
	FROM analyses
	WHERE digest = ?
	ORDER BY timestamp DESC, id DESC
	`
	return hdb.queryMetadata(ctx, query, digest)
}

func (hdb *HistoryDB) queryMetadata(ctx context.Context, query string, arg any) ([]AnalysisMetadata, error) {
	rows, err := hdb.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []AnalysisMetadata
	for rows.Next() {
		var (
			meta      AnalysisMetadata
			digest    sql.NullString
			timestamp string
			meanAge   sql.NullFloat64
		)
		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.Path, &digest, &meta.Selector, &timestamp, &meanAge); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Digest = digest.String
		meta.Timestamp = parseTimestamp(timestamp)
		meta.MeanAge = meanAge.Float64
		meta.MeanDefined = meanAge.Valid

		results = append(results, meta)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
