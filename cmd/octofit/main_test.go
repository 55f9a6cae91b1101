package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
)

type fakeAPI struct {
	mu   sync.Mutex
	puts map[string]apiclient.TeamUpdate
	urls []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Method == http.MethodPut {
		body, _ := io.ReadAll(r.Body)
		f.urls = append(f.urls, r.URL.Path)
		var tu apiclient.TeamUpdate
		_ = json.Unmarshal(body, &tu)
		f.puts[r.URL.Path] = tu
		w.Write(body)
		return
	}

	bodies := map[string]string{
		apiclient.PathUsers:       `[{"_id":"3","name":"Thor Odinson","username":"thor","email":"thor@asgard.com"}]`,
		apiclient.PathTeams:       `[{"_id":"1","name":"Team Marvel","members":["ironman","thor"]},{"_id":"2","name":"Team DC","members":["batman"]}]`,
		apiclient.PathActivities:  `[{"_id":"1","username":"thor","activity_type":"Hammer","duration":"30 mins","calories":400,"date":"2024-01-12"}]`,
		apiclient.PathLeaderboard: `[{"_id":"1","username":"thor","score":950}]`,
		apiclient.PathWorkouts:    `[]`,
	}
	w.Write([]byte(bodies[r.URL.Path]))
}

func run(t *testing.T, args ...string) (*fakeAPI, string, error) {
	t.Helper()
	api := &fakeAPI{puts: map[string]apiclient.TeamUpdate{}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--api-url", srv.URL))
	err := root.Execute()
	return api, out.String(), err
}

func TestView_JSON(t *testing.T) {
	_, out, err := run(t, "view", "users", "--format", "json")
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Team Marvel", rows[0]["Team"])
	assert.Equal(t, float64(400), rows[0]["Calories"])
}

func TestView_Table(t *testing.T) {
	_, out, err := run(t, "view", "leaderboard", "--sort", "score", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "Leaderboard")
	assert.Contains(t, out, "400 kcal")

	_, out, err = run(t, "view", "workouts")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts found.")
}

func TestView_Rejects(t *testing.T) {
	_, _, err := run(t, "view", "badges")
	assert.ErrorContains(t, err, "unknown resource")

	_, _, err = run(t, "view", "teams", "--sort", "email")
	assert.ErrorContains(t, err, "cannot sort teams")

	_, _, err = run(t, "view", "teams", "--format", "xml")
	assert.ErrorContains(t, err, "--format")
}

func TestUsersEdit_DryRun(t *testing.T) {
	api, out, err := run(t, "users", "edit", "thor", "--team", "Team DC", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "PUT /api/users/3/")
	assert.Contains(t, out, "team Team Marvel (1)")
	assert.Contains(t, out, "- thor")
	assert.Contains(t, out, "+ thor")
	assert.Empty(t, api.urls)
}

func TestUsersEdit_LeaveTeam(t *testing.T) {
	api, out, err := run(t, "users", "edit", "thor", "--team", "", "--email", "odinson@asgard.com")
	require.NoError(t, err)

	assert.Equal(t, "Saved thor.\n", out)
	assert.Equal(t, []string{"/api/users/3/", "/api/teams/1/"}, api.urls)
	assert.Equal(t, []string{"ironman"}, api.puts["/api/teams/1/"].Members)
}

func TestUsersEdit_UnknownUser(t *testing.T) {
	_, _, err := run(t, "users", "edit", "loki", "--dry-run")
	assert.ErrorContains(t, err, `user "loki" not found`)
}

func TestSeed_MissingFile(t *testing.T) {
	_, _, err := run(t, "seed", "--file", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "bogus")

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"view", "users", "--api-url", "http://127.0.0.1:0"})

	err := root.Execute()
	require.Error(t, err)
	assert.Regexp(t, `^invalid log level "bogus"`, err.Error())
	assert.NotContains(t, err.Error(), "failed to initialize logger")
}
