package editflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/decode"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) UpdateUser(ctx context.Context, id string, update apiclient.UserUpdate) (*apiclient.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.User), args.Error(1)
}

func (m *MockWriter) UpdateTeam(ctx context.Context, id string, update apiclient.TeamUpdate) (*apiclient.Team, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.Team), args.Error(1)
}

func sampleTeams() []apiclient.Team {
	return []apiclient.Team{
		{ID: "1", Name: "Team Marvel", Members: decode.Strings{"ironman", "spiderman", "thor"}},
		{ID: "2", Name: "Team DC", Members: decode.Strings{"batman", "superman"}},
	}
}

func thor() apiclient.User {
	return apiclient.User{ID: "3", Name: "Thor Odinson", Username: "thor", Email: "thor@asgard.com"}
}

func TestFlow_Begin_PrepopulatesForm(t *testing.T) {
	f := New(new(MockWriter), nil)
	assert.Equal(t, StateViewing, f.State())

	require.NoError(t, f.Begin(thor(), sampleTeams()))

	assert.Equal(t, StateEditing, f.State())
	assert.Equal(t, Form{Name: "Thor Odinson", Username: "thor", Email: "thor@asgard.com", Team: "Team Marvel"}, f.Form())

	f.Cancel()
	assert.Equal(t, StateViewing, f.State())
}

func TestFlow_Save_TeamChangeWritesBothTeams(t *testing.T) {
	w := new(MockWriter)
	f := New(w, nil)
	require.NoError(t, f.Begin(thor(), sampleTeams()))

	form := f.Form()
	form.Team = "Team DC"
	require.NoError(t, f.SetForm(form))

	w.On("UpdateUser", mock.Anything, "3", apiclient.UserUpdate{Name: "Thor Odinson", Username: "thor", Email: "thor@asgard.com"}).
		Return(&apiclient.User{ID: "3", Username: "thor"}, nil).Once()
	w.On("UpdateTeam", mock.Anything, "1", apiclient.TeamUpdate{Name: "Team Marvel", Members: []string{"ironman", "spiderman"}}).
		Return(&apiclient.Team{ID: "1"}, nil).Once()
	w.On("UpdateTeam", mock.Anything, "2", apiclient.TeamUpdate{Name: "Team DC", Members: []string{"batman", "superman", "thor"}}).
		Return(&apiclient.Team{ID: "2"}, nil).Once()

	require.NoError(t, f.Save(context.Background()))

	assert.Equal(t, StateViewing, f.State())
	assert.NoError(t, f.Err())
	w.AssertExpectations(t)
	w.AssertNumberOfCalls(t, "UpdateTeam", 2)
}

func TestFlow_Save_AppendsUsernameExactlyOnce(t *testing.T) {
	teams := []apiclient.Team{
		{ID: "1", Name: "A", Members: decode.Strings{"thor"}},
		{ID: "2", Name: "B", Members: decode.Strings{"x", "thor", "y", "thor"}},
	}
	f := New(new(MockWriter), nil)
	require.NoError(t, f.Begin(thor(), teams))

	form := f.Form()
	form.Team = "B"
	require.NoError(t, f.SetForm(form))

	plan, err := f.Plan()
	require.NoError(t, err)
	require.Len(t, plan.TeamWrites, 2)
	assert.Equal(t, []string{}, plan.TeamWrites[0].After)
	assert.Equal(t, []string{"x", "y", "thor"}, plan.TeamWrites[1].After)
}

func TestFlow_Save_PasswordOnlyWhenSet(t *testing.T) {
	w := new(MockWriter)
	f := New(w, nil)
	require.NoError(t, f.Begin(thor(), sampleTeams()))

	form := f.Form()
	form.Email = "odinson@asgard.com"
	form.Password = "stormbreaker"
	require.NoError(t, f.SetForm(form))

	w.On("UpdateUser", mock.Anything, "3", apiclient.UserUpdate{
		Name: "Thor Odinson", Username: "thor", Email: "odinson@asgard.com", Password: "stormbreaker",
	}).Return(&apiclient.User{ID: "3"}, nil).Once()

	require.NoError(t, f.Save(context.Background()))
	w.AssertExpectations(t)
	w.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.Form().Password)
	assert.Equal(t, "odinson@asgard.com", f.User().Email)
}

func TestFlow_Save_FailureKeepsFormAndAllowsRetry(t *testing.T) {
	w := new(MockWriter)
	f := New(w, nil)
	require.NoError(t, f.Begin(thor(), sampleTeams()))

	form := f.Form()
	form.Team = "Team DC"
	require.NoError(t, f.SetForm(form))

	boom := errors.New("HTTP 500")
	w.On("UpdateUser", mock.Anything, "3", mock.Anything).Return(&apiclient.User{ID: "3"}, nil).Twice()
	w.On("UpdateTeam", mock.Anything, "1", mock.Anything).Return(&apiclient.Team{ID: "1"}, nil).Twice()
	w.On("UpdateTeam", mock.Anything, "2", mock.Anything).Return(nil, boom).Once()

	err := f.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	var saveErr *SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Equal(t, StepNewTeam, saveErr.Step)
	assert.Equal(t, []Step{StepUser, StepOldTeam}, saveErr.Applied)
	assert.Contains(t, err.Error(), "already applied")

	assert.Equal(t, StateEditingWithError, f.State())
	assert.Equal(t, "Team DC", f.Form().Team)
	assert.Equal(t, err, f.Err())

	w.On("UpdateTeam", mock.Anything, "2", apiclient.TeamUpdate{Name: "Team DC", Members: []string{"batman", "superman", "thor"}}).
		Return(&apiclient.Team{ID: "2"}, nil).Once()

	require.NoError(t, f.Save(context.Background()))
	assert.Equal(t, StateViewing, f.State())
	w.AssertExpectations(t)
}

func TestFlow_Save_UserFailureStopsBeforeTeams(t *testing.T) {
	w := new(MockWriter)
	f := New(w, nil)
	require.NoError(t, f.Begin(thor(), sampleTeams()))
	form := f.Form()
	form.Team = ""
	require.NoError(t, f.SetForm(form))

	w.On("UpdateUser", mock.Anything, "3", mock.Anything).Return(nil, errors.New("network down")).Once()

	err := f.Save(context.Background())
	var saveErr *SaveError
	require.True(t, errors.As(err, &saveErr))
	assert.Equal(t, StepUser, saveErr.Step)
	assert.Empty(t, saveErr.Applied)
	w.AssertNotCalled(t, "UpdateTeam", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlow_Save_DuplicateTeamNamesUseTeamID(t *testing.T) {
	teams := []apiclient.Team{
		{ID: "1", Name: "Squad", Members: decode.Strings{"batman"}},
		{ID: "2", Name: "Squad", Members: decode.Strings{"thor"}},
		{ID: "3", Name: "Other", Members: decode.Strings{}},
	}
	w := new(MockWriter)
	f := New(w, nil)
	require.NoError(t, f.Begin(thor(), teams))
	assert.Equal(t, Origin{Username: "thor", TeamID: "2"}, f.Origin())

	form := f.Form()
	form.Team = "Other"
	require.NoError(t, f.SetForm(form))

	w.On("UpdateUser", mock.Anything, "3", mock.Anything).Return(&apiclient.User{ID: "3"}, nil).Once()
	w.On("UpdateTeam", mock.Anything, "2", apiclient.TeamUpdate{Name: "Squad", Members: []string{}}).
		Return(&apiclient.Team{ID: "2"}, nil).Once()
	w.On("UpdateTeam", mock.Anything, "3", apiclient.TeamUpdate{Name: "Other", Members: []string{"thor"}}).
		Return(&apiclient.Team{ID: "3"}, nil).Once()

	require.NoError(t, f.Save(context.Background()))
	w.AssertExpectations(t)
	w.AssertNotCalled(t, "UpdateTeam", mock.Anything, "1", mock.Anything)
	assert.Equal(t, Origin{Username: "thor", TeamID: "3"}, f.Origin())
}

func TestFlow_Resume(t *testing.T) {
	// the user record already carries the new username; the team does not
	renamedThor := thor()
	renamedThor.Username = "thor2"

	t.Run("plans the rename against the origin", func(t *testing.T) {
		w := new(MockWriter)
		f := New(w, nil)
		require.NoError(t, f.Resume(renamedThor, sampleTeams(), Origin{Username: "thor", TeamID: "1"}))
		assert.Equal(t, "Team Marvel", f.Form().Team)

		plan, err := f.Plan()
		require.NoError(t, err)
		require.Len(t, plan.TeamWrites, 1)
		assert.Equal(t, StepRename, plan.TeamWrites[0].Step)
		assert.Equal(t, "1", plan.TeamWrites[0].TeamID)
		assert.Equal(t, []string{"ironman", "spiderman", "thor2"}, plan.TeamWrites[0].After)

		w.On("UpdateUser", mock.Anything, "3", mock.Anything).Return(&apiclient.User{ID: "3"}, nil).Once()
		w.On("UpdateTeam", mock.Anything, "1", mock.Anything).Return(&apiclient.Team{ID: "1"}, nil).Once()
		require.NoError(t, f.Save(context.Background()))
		assert.Equal(t, Origin{Username: "thor2", TeamID: "1"}, f.Origin())
	})

	t.Run("empty origin resolves from teams", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Resume(thor(), sampleTeams(), Origin{}))
		assert.Equal(t, Origin{Username: "thor", TeamID: "1"}, f.Origin())
	})

	t.Run("missing origin team counts as no team", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Resume(renamedThor, sampleTeams(), Origin{Username: "thor", TeamID: "42"}))
		assert.Equal(t, Origin{Username: "thor"}, f.Origin())
		assert.Empty(t, f.Form().Team)

		plan, err := f.Plan()
		require.NoError(t, err)
		assert.Empty(t, plan.TeamWrites)
	})
}

func TestFlow_Plan(t *testing.T) {
	t.Run("leave team", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Begin(thor(), sampleTeams()))
		form := f.Form()
		form.Team = readmodel.NoTeam
		require.NoError(t, f.SetForm(form))

		plan, err := f.Plan()
		require.NoError(t, err)
		require.Len(t, plan.TeamWrites, 1)
		assert.Equal(t, StepOldTeam, plan.TeamWrites[0].Step)
		assert.Equal(t, []string{"ironman", "spiderman"}, plan.TeamWrites[0].After)
	})

	t.Run("join from no team", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Begin(apiclient.User{ID: "9", Username: "wolverine"}, sampleTeams()))
		assert.Equal(t, "", f.Form().Team)

		form := f.Form()
		form.Team = "Team Marvel"
		require.NoError(t, f.SetForm(form))

		plan, err := f.Plan()
		require.NoError(t, err)
		require.Len(t, plan.TeamWrites, 1)
		assert.Equal(t, StepNewTeam, plan.TeamWrites[0].Step)
		assert.Equal(t, []string{"ironman", "spiderman", "thor", "wolverine"}, plan.TeamWrites[0].After)
	})

	t.Run("rename keeps team position", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Begin(thor(), sampleTeams()))
		form := f.Form()
		form.Username = "godofthunder"
		require.NoError(t, f.SetForm(form))

		plan, err := f.Plan()
		require.NoError(t, err)
		require.Len(t, plan.TeamWrites, 1)
		assert.Equal(t, StepRename, plan.TeamWrites[0].Step)
		assert.Equal(t, []string{"ironman", "spiderman", "godofthunder"}, plan.TeamWrites[0].After)
	})

	t.Run("move with rename", func(t *testing.T) {
		f := New(nil, nil)
		require.NoError(t, f.Begin(thor(), sampleTeams()))
		form := f.Form()
		form.Username = "godofthunder"
		form.Team = "Team DC"
		require.NoError(t, f.SetForm(form))

		plan, err := f.Plan()
		require.NoError(t, err)
		require.Len(t, plan.TeamWrites, 2)
		assert.Equal(t, []string{"ironman", "spiderman"}, plan.TeamWrites[0].After)
		assert.Equal(t, []string{"batman", "superman", "godofthunder"}, plan.TeamWrites[1].After)
	})

	t.Run("validation", func(t *testing.T) {
		f := New(nil, nil)
		_, err := f.Plan()
		assert.ErrorIs(t, err, ErrNotEditing)
		assert.ErrorIs(t, f.SetForm(Form{}), ErrNotEditing)

		require.NoError(t, f.Begin(thor(), sampleTeams()))
		require.NoError(t, f.SetForm(Form{Username: "  "}))
		_, err = f.Plan()
		assert.ErrorIs(t, err, ErrNoUsername)

		require.NoError(t, f.SetForm(Form{Username: "thor", Team: "Team X"}))
		_, err = f.Plan()
		var unknown *UnknownTeamError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "Team X", unknown.Team)

		assert.Error(t, f.Save(context.Background()))
		assert.Equal(t, StateEditingWithError, f.State())
	})
}

func TestPlan_Diff(t *testing.T) {
	plan := Plan{TeamWrites: []TeamWrite{
		{TeamID: "1", TeamName: "Team Marvel", Before: []string{"ironman", "thor"}, After: []string{"ironman"}},
		{TeamID: "2", TeamName: "Team DC", Before: []string{"batman"}, After: []string{"batman", "thor"}},
	}}

	diff := plan.Diff()
	assert.Contains(t, diff, "team Team Marvel (1)\n")
	assert.Contains(t, diff, "- thor\n")
	assert.Contains(t, diff, "+ thor\n")
	assert.Contains(t, diff, "  batman\n")
	assert.Equal(t, "", Plan{}.Diff())
}

// The save sequence against a real HTTP client: one user PUT, then the old
// and the new team PUTs, in that order.
func TestFlow_Save_AgainstAPIClient(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
		teams = map[string]apiclient.TeamUpdate{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		if strings.HasPrefix(r.URL.Path, apiclient.PathTeams) {
			var body apiclient.TeamUpdate
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			teams[r.URL.Path] = body
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := New(apiclient.New(srv.URL), nil)
	require.NoError(t, f.Begin(thor(), sampleTeams()))
	form := f.Form()
	form.Team = "Team DC"
	require.NoError(t, f.SetForm(form))
	require.NoError(t, f.Save(context.Background()))

	assert.Equal(t, []string{"PUT /api/users/3/", "PUT /api/teams/1/", "PUT /api/teams/2/"}, calls)
	assert.Equal(t, []string{"ironman", "spiderman"}, teams["/api/teams/1/"].Members)
	assert.Equal(t, []string{"batman", "superman", "thor"}, teams["/api/teams/2/"].Members)
	assert.Equal(t, "thor", f.User().Username)
}
