//go:build integration

package integration

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/dashboard"
	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/handler"
	"github.com/bagdasarian/octofit-tracker/internal/handler/server"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
	"github.com/bagdasarian/octofit-tracker/internal/repository/postgres"
	"github.com/bagdasarian/octofit-tracker/internal/seed"
	"github.com/bagdasarian/octofit-tracker/internal/service"
	"github.com/bagdasarian/octofit-tracker/internal/snapshot"
)

// startAPI seeds the database and serves the REST API over it.
func startAPI(t *testing.T, database *sql.DB) *apiclient.Client {
	t.Helper()
	ctx := context.Background()

	fixtures, err := seed.Default()
	require.NoError(t, err)
	_, err = seed.NewSeeder(database, nil).Run(ctx, fixtures)
	require.NoError(t, err)

	h := handler.NewHandler(
		service.NewUserService(postgres.NewUserRepository(database)),
		service.NewTeamService(postgres.NewTeamRepository(database)),
		service.NewActivityService(postgres.NewActivityRepository(database)),
		service.NewWorkoutService(postgres.NewWorkoutRepository(database)),
		service.NewLeaderboardService(postgres.NewLeaderboardRepository(database)),
		service.NewStatsService(postgres.NewStatsRepository(database)),
		zaptest.NewLogger(t),
	)
	srv := httptest.NewServer(server.NewAPIServer(h, "", zaptest.NewLogger(t)).Handler())
	t.Cleanup(srv.Close)

	return apiclient.New(srv.URL, apiclient.WithHTTPClient(srv.Client()))
}

func TestAPI_ListsAndJoins(t *testing.T) {
	client := startAPI(t, setupTestDB(t))
	ctx := context.Background()

	snap, err := snapshot.Load(ctx, client, snapshot.ForUsers|snapshot.NeedLeaderboard|snapshot.NeedWorkouts)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 8)
	assert.Len(t, snap.Teams, 2)
	assert.Len(t, snap.Leaderboard, 8)

	c := snap.Composer()
	assert.Equal(t, "Team Marvel", c.TeamForUser("ironman"))
	assert.Equal(t, "Team DC", c.TeamForUser("batman"))
	assert.Positive(t, c.CaloriesForUser("ironman"))

	rows := readmodel.LeaderboardRows(snap.Leaderboard, c, readmodel.Sort{Column: "score", Desc: true})
	require.NotEmpty(t, rows)
	assert.NotEqual(t, readmodel.NoTeam, rows[0].Team)
}

func TestAPI_EditMovesUserBetweenTeams(t *testing.T) {
	database := setupTestDB(t)
	client := startAPI(t, database)
	ctx := context.Background()

	snap, err := snapshot.Load(ctx, client, snapshot.ForEdit)
	require.NoError(t, err)
	thor, ok := snap.UserByUsername("thor")
	require.True(t, ok)

	flow := editflow.New(client, zaptest.NewLogger(t))
	require.NoError(t, flow.Begin(thor, snap.Teams))
	form := flow.Form()
	form.Team = "Team DC"
	form.Password = "stormbreaker"
	require.NoError(t, flow.SetForm(form))
	require.NoError(t, flow.Save(ctx))

	after, err := snapshot.Load(ctx, client, snapshot.ForEdit)
	require.NoError(t, err)
	c := readmodel.NewComposer(after.Teams, nil)
	assert.Equal(t, "Team DC", c.TeamForUser("thor"))

	var marvel, dc int
	for _, team := range after.Teams {
		for _, m := range team.Members {
			if m != "thor" {
				continue
			}
			switch team.Name {
			case "Team Marvel":
				marvel++
			case "Team DC":
				dc++
			}
		}
	}
	assert.Zero(t, marvel)
	assert.Equal(t, 1, dc)

	var password string
	require.NoError(t, database.QueryRowContext(ctx, `SELECT password FROM users WHERE username = 'thor'`).Scan(&password))
	assert.Equal(t, "stormbreaker", password)
}

func TestDashboard_AgainstAPI(t *testing.T) {
	client := startAPI(t, setupTestDB(t))

	d, err := dashboard.New(client, zaptest.NewLogger(t))
	require.NoError(t, err)
	srv := httptest.NewServer(d.Routes())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/leaderboard")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Team Marvel")
	assert.Contains(t, string(body), " kcal")

	snap, err := snapshot.Load(context.Background(), client, snapshot.ForEdit)
	require.NoError(t, err)
	batman, ok := snap.UserByUsername("batman")
	require.True(t, ok)

	noRedirect := *srv.Client()
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	form := url.Values{"name": {batman.Name}, "username": {"darkknight"}, "email": {batman.Email}, "team": {"Team DC"}}
	resp, err = noRedirect.Post(srv.URL+"/users/"+string(batman.ID)+"/edit", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	after, err := snapshot.Load(context.Background(), client, snapshot.ForEdit)
	require.NoError(t, err)
	assert.Equal(t, "Team DC", readmodel.NewComposer(after.Teams, nil).TeamForUser("darkknight"))
}
