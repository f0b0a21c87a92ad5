package repository

import (
	"context"
	"encoding/json"
	"errors"

	"kuztube_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrVersionConflict is returned by Save when the stored record changed
// since it was loaded. Callers re-run their load-compute-save cycle.
var ErrVersionConflict = errors.New("stats version conflict")

// StatsRepository stores one JSON stats blob per user with an optimistic
// concurrency token in a separate column.
type StatsRepository struct {
	db *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Load returns the stored record, or the default record (version 0) if none
// exists. Absence is not an error; the record is created lazily on first Save.
func (r *StatsRepository) Load(ctx context.Context, userID int64) (*domain.UserStats, error) {
	var (
		data    []byte
		version int64
	)
	err := r.db.QueryRow(ctx,
		`SELECT data, version FROM user_stats WHERE user_id = $1`,
		userID,
	).Scan(&data, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewUserStats(), nil
	}
	if err != nil {
		return nil, err
	}

	stats := domain.NewUserStats()
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, err
	}
	stats.Version = version
	return stats, nil
}

// Save persists the record. Version 0 inserts a fresh row; any other version
// does a compare-and-swap against the stored token. A lost race returns
// ErrVersionConflict in both cases.
func (r *StatsRepository) Save(ctx context.Context, userID int64, stats *domain.UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	if stats.Version == 0 {
		tag, err := r.db.Exec(ctx,
			`INSERT INTO user_stats (user_id, data, version)
			 VALUES ($1, $2, 1)
			 ON CONFLICT (user_id) DO NOTHING`,
			userID, data,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrVersionConflict
		}
		stats.Version = 1
		return nil
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE user_stats
		 SET data = $2, version = version + 1, updated_at = now()
		 WHERE user_id = $1 AND version = $3`,
		userID, data, stats.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	stats.Version++
	return nil
}

// SetDisplayName upserts the display name shown on leaderboards. A missing
// row is created with the default stats blob.
func (r *StatsRepository) SetDisplayName(ctx context.Context, userID int64, name string) error {
	data, err := json.Marshal(domain.NewUserStats())
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO user_stats (user_id, display_name, data, version)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name`,
		userID, name, data,
	)
	return err
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	XP          int64  `json:"xp"`
	Level       int    `json:"level"`
}

// TopByXP returns users ordered by xp desc.
func (r *StatsRepository) TopByXP(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, COALESCE(display_name, ''), COALESCE((data->>'xp')::bigint, 0) AS xp
		 FROM user_stats
		 ORDER BY xp DESC, user_id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.XP); err != nil {
			return nil, err
		}
		e.Rank = rank
		e.Level = domain.LevelForXP(e.XP).Level
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}
