// Package snapshot fetches the collections a view needs concurrently and
// hands them over as one in-memory snapshot.
package snapshot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
)

// Source lists the tracker collections. *apiclient.Client implements it.
type Source interface {
	Users(ctx context.Context) ([]apiclient.User, error)
	Teams(ctx context.Context) ([]apiclient.Team, error)
	Activities(ctx context.Context) ([]apiclient.Activity, error)
	Workouts(ctx context.Context) ([]apiclient.Workout, error)
	Leaderboard(ctx context.Context) ([]apiclient.LeaderboardEntry, error)
}

// Need selects collections to fetch.
type Need uint8

const (
	NeedUsers Need = 1 << iota
	NeedTeams
	NeedActivities
	NeedWorkouts
	NeedLeaderboard
)

// Per-view needs. The Users and Leaderboard views join teams and activities.
const (
	ForUsers       = NeedUsers | NeedTeams | NeedActivities
	ForLeaderboard = NeedLeaderboard | NeedTeams | NeedActivities
	ForEdit        = NeedUsers | NeedTeams
)

type Snapshot struct {
	Users       []apiclient.User
	Teams       []apiclient.Team
	Activities  []apiclient.Activity
	Workouts    []apiclient.Workout
	Leaderboard []apiclient.LeaderboardEntry
}

// Composer joins the snapshot's teams and activities.
func (s *Snapshot) Composer() *readmodel.Composer {
	return readmodel.NewComposer(s.Teams, s.Activities)
}

// UserByID returns the user whose _id is id.
func (s *Snapshot) UserByID(id string) (apiclient.User, bool) {
	for _, u := range s.Users {
		if string(u.ID) == id {
			return u, true
		}
	}
	return apiclient.User{}, false
}

// UserByUsername returns the first user with the given username.
func (s *Snapshot) UserByUsername(username string) (apiclient.User, bool) {
	for _, u := range s.Users {
		if u.Username == username {
			return u, true
		}
	}
	return apiclient.User{}, false
}

// Load fetches every collection in need concurrently. The first failure
// cancels the rest and is returned; no partial snapshot is produced.
func Load(ctx context.Context, src Source, need Need) (*Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	if need&NeedUsers != 0 {
		g.Go(func() error {
			return fetch(ctx, "users", src.Users, &snap.Users)
		})
	}
	if need&NeedTeams != 0 {
		g.Go(func() error {
			return fetch(ctx, "teams", src.Teams, &snap.Teams)
		})
	}
	if need&NeedActivities != 0 {
		g.Go(func() error {
			return fetch(ctx, "activities", src.Activities, &snap.Activities)
		})
	}
	if need&NeedWorkouts != 0 {
		g.Go(func() error {
			return fetch(ctx, "workouts", src.Workouts, &snap.Workouts)
		})
	}
	if need&NeedLeaderboard != 0 {
		g.Go(func() error {
			return fetch(ctx, "leaderboard", src.Leaderboard, &snap.Leaderboard)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func fetch[T any](ctx context.Context, name string, list func(context.Context) ([]T, error), dst *[]T) error {
	items, err := list(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	*dst = items
	return nil
}
