package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteDB implements DB using modernc.org/sqlite, the pure-Go,
// CGO-free driver, so the archive needs no C toolchain to build.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens path (or creates it) and enables WAL mode for
// concurrent readers alongside the archive writer.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error { return s.db.Close() }

// Migrate applies every embedded migration in migrations/ via goose.
// Goose tracks applied versions in its own table, so re-running Migrate
// on an already-current database is a no-op.
func (s *SQLiteDB) Migrate() error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// SaveCommitment archives a freshly minted (serverSeed, commitment) pair.
// Re-archiving the same commitment is a no-op so callers need not track
// whether a pair was already persisted.
func (s *SQLiteDB) SaveCommitment(c *CommitmentRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO commitments (commitment, server_seed, minted_at) VALUES (?, ?, ?)
		 ON CONFLICT(commitment) DO NOTHING`,
		c.Commitment, c.ServerSeed, c.MintedAt,
	)
	return err
}

// RevealCommitment stamps the moment a commitment's serverSeed was first
// returned to a caller (via a finished game's VerificationInfo), so the
// archive also doubles as a reveal-timing audit log. Only the first
// reveal is recorded; later finishes under the same commitment keep the
// original timestamp.
func (s *SQLiteDB) RevealCommitment(commitment string, revealedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE commitments SET revealed_at = ? WHERE commitment = ? AND revealed_at IS NULL`,
		revealedAt, commitment,
	)
	return err
}

// GetCommitment retrieves an archived commitment by its hex digest.
func (s *SQLiteDB) GetCommitment(commitment string) (*CommitmentRecord, error) {
	var rec CommitmentRecord
	var revealedAt sql.NullTime
	err := s.db.QueryRow(
		`SELECT commitment, server_seed, minted_at, revealed_at FROM commitments WHERE commitment = ?`,
		commitment,
	).Scan(&rec.Commitment, &rec.ServerSeed, &rec.MintedAt, &revealedAt)
	if err != nil {
		return nil, err
	}
	if revealedAt.Valid {
		rec.RevealedAt = &revealedAt.Time
	}
	return &rec, nil
}

// SaveVerdict archives a finished game's replay verdict.
func (s *SQLiteDB) SaveVerdict(v *VerdictRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO verdicts (
			game_id, commitment, client_seed, game_seed_hex, num_balls,
			verified, server_total_win, client_total_win, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`,
		v.GameID, v.Commitment, v.ClientSeed, v.GameSeedHex, v.NumBalls,
		boolToInt(v.Verified), v.ServerTotalWin, v.ClientTotalWin, v.FinishedAt,
	)
	return err
}

// GetVerdict retrieves a single archived verdict by gameId.
func (s *SQLiteDB) GetVerdict(gameID string) (*VerdictRecord, error) {
	var v VerdictRecord
	var verifiedInt int
	err := s.db.QueryRow(
		`SELECT game_id, commitment, client_seed, game_seed_hex, num_balls,
			verified, server_total_win, client_total_win, finished_at
		 FROM verdicts WHERE game_id = ?`,
		gameID,
	).Scan(&v.GameID, &v.Commitment, &v.ClientSeed, &v.GameSeedHex, &v.NumBalls,
		&verifiedInt, &v.ServerTotalWin, &v.ClientTotalWin, &v.FinishedAt)
	if err != nil {
		return nil, err
	}
	v.Verified = verifiedInt == 1
	return &v, nil
}

// ListVerdicts returns a page of archived verdicts, optionally filtered
// to a single commitment, most recently finished first.
func (s *SQLiteDB) ListVerdicts(query VerdictsQuery) (*VerdictsPage, error) {
	whereClause := ""
	args := []any{}
	if query.Commitment != "" {
		whereClause = "WHERE commitment = ?"
		args = append(args, query.Commitment)
	}

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM verdicts " + whereClause
	if err := s.db.QueryRow(countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("count verdicts: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	listQuery := `SELECT game_id, commitment, client_seed, game_seed_hex, num_balls,
			verified, server_total_win, client_total_win, finished_at
		FROM verdicts ` + whereClause + `
		ORDER BY finished_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []VerdictRecord
	for rows.Next() {
		var v VerdictRecord
		var verifiedInt int
		if err := rows.Scan(&v.GameID, &v.Commitment, &v.ClientSeed, &v.GameSeedHex, &v.NumBalls,
			&verifiedInt, &v.ServerTotalWin, &v.ClientTotalWin, &v.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Verified = verifiedInt == 1
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}

	return &VerdictsPage{
		Verdicts:   verdicts,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
