package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube-api-go/internal/db"
)

// SweepResult counts the dangling references removed by one sweep.
type SweepResult struct {
	Comments          int64
	Likes             int64
	Subscriptions     int64
	PlaylistEntries   int64
	HistoryEntries    int64
	OrphanedPlaylists int64
}

// Total is the number of rows touched.
func (s SweepResult) Total() int64 {
	return s.Comments + s.Likes + s.Subscriptions + s.PlaylistEntries + s.HistoryEntries + s.OrphanedPlaylists
}

// MaintenanceRepository removes references left behind by deletions that
// happened outside the cascading delete path.
type MaintenanceRepository interface {
	SweepOrphans(ctx context.Context) (*SweepResult, error)
}

type maintenanceRepository struct {
	pool *pgxpool.Pool
}

// NewMaintenanceRepository creates a new MaintenanceRepository.
func NewMaintenanceRepository(pool *pgxpool.Pool) MaintenanceRepository {
	return &maintenanceRepository{pool: pool}
}

type sweepStep struct {
	query string
	count *int64
}

func (r *maintenanceRepository) SweepOrphans(ctx context.Context) (*SweepResult, error) {
	var res SweepResult

	// Comments go first so the likes step also catches likes on them.
	steps := []sweepStep{
		{`DELETE FROM comments c WHERE NOT EXISTS (SELECT 1 FROM videos v WHERE v.id = c.video_id)`, &res.Comments},
		{`DELETE FROM likes l WHERE
			(l.target_kind = 'video'   AND NOT EXISTS (SELECT 1 FROM videos   x WHERE x.id = l.target_id)) OR
			(l.target_kind = 'comment' AND NOT EXISTS (SELECT 1 FROM comments x WHERE x.id = l.target_id)) OR
			(l.target_kind = 'tweet'   AND NOT EXISTS (SELECT 1 FROM tweets   x WHERE x.id = l.target_id))`, &res.Likes},
		{`DELETE FROM subscriptions s WHERE
			NOT EXISTS (SELECT 1 FROM users u WHERE u.id = s.subscriber_id) OR
			NOT EXISTS (SELECT 1 FROM users u WHERE u.id = s.channel_id)`, &res.Subscriptions},
		{`DELETE FROM playlists p WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = p.owner_id)`, &res.OrphanedPlaylists},
		{`UPDATE playlists p SET video_ids = ARRAY(
			SELECT x.id FROM unnest(p.video_ids) WITH ORDINALITY AS x(id, ord)
			WHERE EXISTS (SELECT 1 FROM videos v WHERE v.id = x.id)
			ORDER BY x.ord)
		  WHERE EXISTS (SELECT 1 FROM unnest(p.video_ids) AS y(id)
			WHERE NOT EXISTS (SELECT 1 FROM videos v WHERE v.id = y.id))`, &res.PlaylistEntries},
		{`UPDATE users u SET watch_history = ARRAY(
			SELECT x.id FROM unnest(u.watch_history) WITH ORDINALITY AS x(id, ord)
			WHERE EXISTS (SELECT 1 FROM videos v WHERE v.id = x.id)
			ORDER BY x.ord)
		  WHERE EXISTS (SELECT 1 FROM unnest(u.watch_history) AS y(id)
			WHERE NOT EXISTS (SELECT 1 FROM videos v WHERE v.id = y.id))`, &res.HistoryEntries},
	}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, step := range steps {
			tag, err := tx.Exec(ctx, step.query)
			if err != nil {
				return err
			}
			*step.count = tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return nil, db.WrapError(err, "sweep orphans")
	}
	return &res, nil
}
