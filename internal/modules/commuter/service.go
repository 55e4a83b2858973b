// README: Commuter service resolves requester records, candidate pools and group members.
package commuter

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"carpool/internal/types"
)

type Repository interface {
	Get(ctx context.Context, id types.ID) (*Commuter, error)
	ListActive(ctx context.Context, exclude, only []types.ID) ([]Commuter, error)
	ListGroup(ctx context.Context, groupID types.ID) ([]Commuter, error)
	Contacted(ctx context.Context, id types.ID) ([]types.ID, error)
	Favorites(ctx context.Context, id types.ID) ([]types.ID, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Commuter, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalid)
	}
	return s.repo.Get(ctx, id)
}

// Pool returns the active candidate pool for a requester. The requester is
// always excluded.
func (s *Service) Pool(ctx context.Context, requesterID types.ID, opts PoolOptions) ([]Commuter, error) {
	var contacted, favorites []types.ID

	g, gctx := errgroup.WithContext(ctx)
	if opts.HideContacted {
		g.Go(func() error {
			ids, err := s.repo.Contacted(gctx, requesterID)
			if err != nil {
				return fmt.Errorf("load contacted for %s: %w", requesterID, err)
			}
			contacted = ids
			return nil
		})
	}
	if opts.FavoritesOnly {
		g.Go(func() error {
			ids, err := s.repo.Favorites(gctx, requesterID)
			if err != nil {
				return fmt.Errorf("load favorites for %s: %w", requesterID, err)
			}
			favorites = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var only []types.ID
	if opts.FavoritesOnly {
		if len(favorites) == 0 {
			return []Commuter{}, nil
		}
		only = favorites
	}

	exclude := append([]types.ID{requesterID}, contacted...)
	pool, err := s.repo.ListActive(ctx, exclude, only)
	if err != nil {
		return nil, fmt.Errorf("list pool for %s: %w", requesterID, err)
	}
	return pool, nil
}

// Group returns the members of a carpool group.
func (s *Service) Group(ctx context.Context, groupID types.ID) ([]Commuter, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: missing group id", ErrInvalid)
	}
	members, err := s.repo.ListGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group %s: %w", groupID, err)
	}
	return members, nil
}
