// README: Matching service loads requester and pool, runs the engine and applies listing policies.
package matching

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carpool/internal/config"
	"carpool/internal/modules/commuter"
	"carpool/internal/modules/location"
	"carpool/internal/types"
)

type CommuterSource interface {
	Get(ctx context.Context, id types.ID) (*commuter.Commuter, error)
	Pool(ctx context.Context, requesterID types.ID, opts commuter.PoolOptions) ([]commuter.Commuter, error)
}

type Listing string

const (
	ListingSidebar Listing = "sidebar"
	ListingMap     Listing = "map"
)

// MapEntry is a map listing row. Work is rounded for public display.
type MapEntry struct {
	CandidateID types.ID      `json:"id"`
	Role        commuter.Role `json:"role"`
	Score       float64       `json:"score"`
	Work        types.Point   `json:"work"`
}

type Service struct {
	commuters CommuterSource
	cfg       config.MatchingConfig
	log       *zap.Logger
}

func NewService(commuters CommuterSource, cfg config.MatchingConfig, log *zap.Logger) *Service {
	if cfg.SidebarLimit <= 0 {
		cfg.SidebarLimit = SidebarLimit
	}
	if cfg.MapLimit <= 0 {
		cfg.MapLimit = MapListingLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{commuters: commuters, cfg: cfg, log: log}
}

// Recommend returns the sidebar listing for requesterID under the requested
// filter and sort.
func (s *Service) Recommend(ctx context.Context, requesterID types.ID, cfg FilterConfig, opts commuter.PoolOptions) ([]Recommendation, error) {
	ranked, _, err := s.run(ctx, ListingSidebar, requesterID, cfg, opts)
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// MapListing returns the map listing for requesterID. The map always sorts
// by distance; viewers see every eligible candidate.
func (s *Service) MapListing(ctx context.Context, requesterID types.ID, cfg FilterConfig, opts commuter.PoolOptions) ([]MapEntry, error) {
	cfg.Sort = SortDistance
	ranked, byID, err := s.run(ctx, ListingMap, requesterID, cfg, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]MapEntry, 0, len(ranked))
	for _, r := range ranked {
		c := byID[r.CandidateID]
		entries = append(entries, MapEntry{
			CandidateID: r.CandidateID,
			Role:        c.Role,
			Score:       r.Score,
			Work: types.Point{
				Lng: location.RoundCoord(c.Work.Lng),
				Lat: location.RoundCoord(c.Work.Lat),
			},
		})
	}
	return entries, nil
}

func (s *Service) limitFor(listing Listing, requester *commuter.Commuter) int {
	if listing == ListingMap {
		if requester.Role == commuter.RoleViewer {
			return NoLimit
		}
		return s.cfg.MapLimit
	}
	return s.cfg.SidebarLimit
}

func (s *Service) run(ctx context.Context, listing Listing, requesterID types.ID, cfg FilterConfig, opts commuter.PoolOptions) ([]Recommendation, map[types.ID]commuter.Commuter, error) {
	RecommendationRequests.WithLabelValues(string(listing), string(cfg.Sort)).Inc()

	requester, err := s.commuters.Get(ctx, requesterID)
	if err != nil {
		return nil, nil, err
	}
	if err := requester.Validate(); err != nil {
		return nil, nil, fmt.Errorf("requester %s: %w", requesterID, err)
	}

	pool, err := s.commuters.Pool(ctx, requesterID, opts)
	if err != nil {
		return nil, nil, err
	}

	valid := make([]commuter.Commuter, 0, len(pool))
	byID := make(map[types.ID]commuter.Commuter, len(pool))
	invalid := 0
	for _, c := range pool {
		if err := c.Validate(); err != nil {
			s.log.Debug("discarding pool member", zap.String("commuter_id", string(c.ID)), zap.Error(err))
			invalid++
			continue
		}
		valid = append(valid, c)
		byID[c.ID] = c
	}

	start := time.Now()
	ev := Evaluate(*requester, valid, cfg)
	ranked := Rank(ev.Scored, s.limitFor(listing, requester))
	ScoringDuration.WithLabelValues(string(listing)).Observe(time.Since(start).Seconds())

	if invalid > 0 {
		ev.Excluded[ReasonInvalidRecord] += invalid
	}
	for reason, n := range ev.Excluded {
		if n > 0 {
			CandidateExclusions.WithLabelValues(string(reason)).Add(float64(n))
		}
	}

	s.log.Debug("recommendations computed",
		zap.String("requester_id", string(requesterID)),
		zap.String("listing", string(listing)),
		zap.Int("pool", len(pool)),
		zap.Int("eligible", len(ev.Scored)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, byID, nil
}
