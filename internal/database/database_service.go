package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"           // PostgreSQLドライバー
	_ "github.com/mattn/go-sqlite3" // ローカル・テスト用
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/models"
)

// ErrSnapshotNotFound is returned when no records were ever saved for a user.
var ErrSnapshotNotFound = errors.New("contribution snapshot not found")

// DatabaseService stores the last successful upstream fetch per user. Only raw
// records are kept; graphs are always recomputed.
type DatabaseService struct {
	DB     *sql.DB
	logger *zap.Logger
}

// DriverFor picks the driver for a DATABASE_URL. "sqlite3://path" and "file:"
// URLs go to SQLite, everything else to Postgres.
func DriverFor(databaseURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite3://"):
		return "sqlite3", strings.TrimPrefix(databaseURL, "sqlite3://")
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:":
		return "sqlite3", databaseURL
	}
	return "postgres", databaseURL
}

// NewDatabaseService creates a new instance of DatabaseService and establishes a database connection.
func NewDatabaseService(ctx context.Context, databaseURL string, logger *zap.Logger) (*DatabaseService, error) {
	driver, dsn := DriverFor(databaseURL)
	logger.Info("データベース接続を試行中", zap.String("driver", driver), zap.String("dsn", redact(dsn)))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("データベースへの接続オブジェクト作成に失敗しました: %w", err)
	}
	if driver == "sqlite3" {
		// in-memory DB は接続ごとに別物になるので 1 本に固定
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("データベースのPingに失敗しました。接続情報やネットワークを確認してください: %w", err)
	}

	logger.Info("データベースに正常に接続しました。", zap.String("driver", driver))
	return &DatabaseService{DB: db, logger: logger}, nil
}

// Close closes the underlying pool.
func (s *DatabaseService) Close() error {
	return s.DB.Close()
}

// Ping checks that the database is still reachable.
func (s *DatabaseService) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// InitSchema creates the snapshot table when it does not exist.
func (s *DatabaseService) InitSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("スキーマの作成に失敗しました: %w", err)
		}
	}
	return nil
}

// SaveContributions replaces the stored records of username.
// It first deletes existing rows and then inserts the new ones in one transaction.
func (s *DatabaseService) SaveContributions(ctx context.Context, username string, records []models.ContributionRecord) error {
	key := strings.ToLower(username)
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	// 既存のデータを削除
	if _, err := tx.ExecContext(ctx, `DELETE FROM contribution_snapshots WHERE username = $1`, key); err != nil {
		return fmt.Errorf("既存の貢献データの削除に失敗しました: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contribution_snapshots (username, date, contribution_count, intensity, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("INSERT文の準備に失敗しました: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	seen := make(map[models.DateKey]bool, len(records))
	inserted := 0
	for _, c := range records {
		date, err := time.Parse(models.DateLayout, strings.TrimSpace(string(c.Date)))
		if err != nil {
			return fmt.Errorf("日付のパースに失敗しました (%s): %w", c.Date, err)
		}
		dk := models.DateKey(date.Format(models.DateLayout))
		if seen[dk] {
			continue
		}
		seen[dk] = true
		if _, err := stmt.ExecContext(ctx, key, string(dk), c.Count, int(c.Intensity), now); err != nil {
			return fmt.Errorf("貢献データの挿入に失敗しました (日付: %s, 貢献数: %d): %w", dk, c.Count, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	s.logger.Debug("snapshot saved", zap.String("username", key), zap.Int("records", inserted))
	return nil
}

// GetContributions returns the stored records of username ordered by date.
func (s *DatabaseService) GetContributions(ctx context.Context, username string) ([]models.ContributionRecord, error) {
	key := strings.ToLower(username)
	rows, err := s.DB.QueryContext(ctx, `
		SELECT date, contribution_count, intensity
		FROM contribution_snapshots
		WHERE username = $1
		ORDER BY date ASC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("保存済み貢献データの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var records []models.ContributionRecord
	for rows.Next() {
		var (
			date      string
			count     int
			intensity int
		)
		if err := rows.Scan(&date, &count, &intensity); err != nil {
			return nil, fmt.Errorf("保存済み貢献データのスキャンに失敗しました: %w", err)
		}
		records = append(records, models.ContributionRecord{
			Date:      models.DateKey(date),
			Count:     count,
			Intensity: models.Intensity(intensity),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("保存済み貢献データのイテレーション中にエラーが発生しました: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, key)
	}
	return records, nil
}

// redact hides the password part of a connection URL for logging.
func redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		creds = creds[:colon] + ":***"
	}
	return dsn[:scheme+3] + creds + dsn[at:]
}
