// README: Commuter store backed by Postgres records and Redis contact/favourite sets.
package commuter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/redis/go-redis/v9"

	"carpool/internal/types"
)

const (
	contactedKeyPrefix = "carpool:commuter:%s:contacted"
	favoritesKeyPrefix = "carpool:commuter:%s:favorites"
)

const commuterColumns = `
	id, role, seats_avail,
	home_lng, home_lat, work_lng, work_lat,
	days_working, start_time, end_time,
	coop_start_date, coop_end_date, carpool_id`

// Querier is the part of a pgx pool the store reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db    Querier
	redis *redis.Client
}

func NewStore(db Querier, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Commuter, error) {
	row := s.db.QueryRow(ctx, `SELECT `+commuterColumns+` FROM commuters WHERE id = $1`, string(id))
	c, err := scanCommuter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListActive returns active, onboarded commuters in a stable order. Ids in
// exclude are skipped; a non-nil only restricts the result to those ids.
func (s *Store) ListActive(ctx context.Context, exclude, only []types.ID) ([]Commuter, error) {
	var onlyArg []string
	if only != nil {
		onlyArg = idStrings(only)
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+commuterColumns+`
		FROM commuters
		WHERE status = $1
		  AND onboarded
		  AND NOT (id = ANY($2))
		  AND ($3::text[] IS NULL OR id = ANY($3))
		ORDER BY created_at, id`,
		string(StatusActive), idStrings(exclude), onlyArg,
	)
	if err != nil {
		return nil, err
	}
	return collectCommuters(rows)
}

// ListGroup returns every commuter that references the carpool group.
func (s *Store) ListGroup(ctx context.Context, groupID types.ID) ([]Commuter, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+commuterColumns+`
		FROM commuters
		WHERE carpool_id = $1
		ORDER BY created_at, id`, string(groupID))
	if err != nil {
		return nil, err
	}
	return collectCommuters(rows)
}

// Contacted returns the ids the commuter has sent or received a request from.
func (s *Store) Contacted(ctx context.Context, id types.ID) ([]types.ID, error) {
	return s.members(ctx, fmt.Sprintf(contactedKeyPrefix, string(id)))
}

// Favorites returns the ids the commuter has favourited.
func (s *Store) Favorites(ctx context.Context, id types.ID) ([]types.ID, error) {
	return s.members(ctx, fmt.Sprintf(favoritesKeyPrefix, string(id)))
}

func (s *Store) members(ctx context.Context, key string) ([]types.ID, error) {
	vals, err := s.redis.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(vals))
	for i, v := range vals {
		ids[i] = types.ID(v)
	}
	return ids, nil
}

func collectCommuters(rows pgx.Rows) ([]Commuter, error) {
	defer rows.Close()
	var out []Commuter
	for rows.Next() {
		c, err := scanCommuter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCommuter(row pgx.Row) (*Commuter, error) {
	var (
		c                  Commuter
		id, role, days     string
		startTime, endTime pgtype.Time
		coopStart, coopEnd pgtype.Date
		carpoolID          pgtype.Text
	)
	err := row.Scan(
		&id, &role, &c.SeatCapacity,
		&c.Home.Lng, &c.Home.Lat, &c.Work.Lng, &c.Work.Lat,
		&days, &startTime, &endTime,
		&coopStart, &coopEnd, &carpoolID,
	)
	if err != nil {
		return nil, err
	}
	c.ID = types.ID(id)
	c.Role = Role(role)
	if c.DaysWorking, err = ParseWeek(days); err != nil {
		return nil, fmt.Errorf("commuter %s: %w", id, err)
	}
	c.WorkStart = timeOfDayPtr(startTime)
	c.WorkEnd = timeOfDayPtr(endTime)
	c.CoopStart = datePtr(coopStart)
	c.CoopEnd = datePtr(coopEnd)
	if carpoolID.Valid {
		g := types.ID(carpoolID.String)
		c.GroupID = &g
	}
	return &c, nil
}

func timeOfDayPtr(t pgtype.Time) *TimeOfDay {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return &TimeOfDay{Hour: int(d / time.Hour), Minute: int(d % time.Hour / time.Minute)}
}

func datePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func idStrings(ids []types.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
