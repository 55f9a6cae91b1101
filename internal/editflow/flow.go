// Package editflow drives editing a user record together with the user's team
// membership.
//
// A save is a sequence of independent writes: the user record, then the old
// team's member list, then the new team's member list. Writes already applied
// are not rolled back when a later one fails; the failure names the step so
// the caller can show what was left half-done and let the user retry.
package editflow

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
)

type State int

const (
	StateViewing State = iota
	StateEditing
	StateSaving
	StateEditingWithError
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateEditingWithError:
		return "editing-with-error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Writer performs the remote writes of a save. *apiclient.Client implements it.
type Writer interface {
	UpdateUser(ctx context.Context, id string, update apiclient.UserUpdate) (*apiclient.User, error)
	UpdateTeam(ctx context.Context, id string, update apiclient.TeamUpdate) (*apiclient.Team, error)
}

// Form holds the editable fields. Team is a team name, or empty for no team.
type Form struct {
	Name     string
	Username string
	Email    string
	Password string
	Team     string
}

var (
	ErrNotEditing = errors.New("no edit in progress")
	ErrBusy       = errors.New("save already in progress")
	ErrNoUsername = errors.New("username is required")
	ErrNoUserID   = errors.New("user has no id")
)

// UnknownTeamError is returned when the form names a team that is not loaded.
type UnknownTeamError struct {
	Team string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Team)
}

// Step names one write of the save sequence.
type Step string

const (
	StepUser    Step = "update user"
	StepOldTeam Step = "remove from old team"
	StepNewTeam Step = "add to new team"
	StepRename  Step = "rename in team"
)

// SaveError reports the write that failed and the writes that had already
// been applied before it.
type SaveError struct {
	Step    Step
	Team    string
	Applied []Step
	Err     error
}

func (e *SaveError) Error() string {
	target := string(e.Step)
	if e.Team != "" {
		target += " " + e.Team
	}
	if len(e.Applied) == 0 {
		return fmt.Sprintf("%s: %v", target, e.Err)
	}
	applied := make([]string, len(e.Applied))
	for i, s := range e.Applied {
		applied[i] = string(s)
	}
	return fmt.Sprintf("%s: %v (already applied: %s)", target, e.Err, strings.Join(applied, ", "))
}

func (e *SaveError) Unwrap() error { return e.Err }

// Origin is the membership a save plans against: the username the teams
// list and the ID of the team holding it. TeamID is empty for no team.
type Origin struct {
	Username string
	TeamID   string
}

type Flow struct {
	writer Writer
	logger *zap.Logger

	state   State
	user    apiclient.User
	teams   []apiclient.Team
	origin  Origin
	oldTeam string
	form    Form
	lastErr error
	saved   *apiclient.User
}

func New(writer Writer, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{writer: writer, logger: logger, state: StateViewing}
}

func (f *Flow) State() State { return f.state }

// Err returns the failure of the last save while in StateEditingWithError.
func (f *Flow) Err() error { return f.lastErr }

// Form returns the current form values.
func (f *Flow) Form() Form { return f.form }

// User returns the user being edited.
func (f *Flow) User() apiclient.User { return f.user }

// Saved returns the user record returned by the last successful save.
func (f *Flow) Saved() *apiclient.User { return f.saved }

// Teams returns the team snapshot the edit was opened with.
func (f *Flow) Teams() []apiclient.Team { return f.teams }

// Origin returns the membership the next save plans against.
func (f *Flow) Origin() Origin { return f.origin }

// Begin opens the form for user, pre-populated with the user's fields and
// the first team listing the username.
func (f *Flow) Begin(user apiclient.User, teams []apiclient.Team) error {
	return f.Resume(user, teams, Origin{})
}

// Resume opens the form like Begin but plans against origin instead of the
// membership found in teams. A stateless UI passes back the Origin of the
// edit it rendered, so a retry after a partly applied save still finds the
// member entry under its old username. An empty origin behaves like Begin;
// an origin team missing from teams counts as no team.
func (f *Flow) Resume(user apiclient.User, teams []apiclient.Team, origin Origin) error {
	if f.state == StateSaving {
		return ErrBusy
	}

	f.user = user
	f.teams = slices.Clone(teams)
	f.lastErr = nil
	f.saved = nil

	f.origin = Origin{Username: user.Username}
	if origin.Username != "" {
		f.origin.Username = origin.Username
		f.origin.TeamID = origin.TeamID
	} else if team, ok := readmodel.NewComposer(teams, nil).TeamOf(user.Username); ok {
		f.origin.TeamID = string(team.ID)
	}
	f.oldTeam = ""
	if team, ok := f.teamByID(f.origin.TeamID); ok {
		f.oldTeam = team.Name
	} else {
		f.origin.TeamID = ""
	}
	f.form = Form{
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
		Team:     f.oldTeam,
	}
	f.state = StateEditing
	return nil
}

// SetForm replaces the form values. It is allowed while editing, including
// after a failed save.
func (f *Flow) SetForm(form Form) error {
	switch f.state {
	case StateEditing, StateEditingWithError:
		f.form = form
		return nil
	case StateSaving:
		return ErrBusy
	default:
		return ErrNotEditing
	}
}

// Cancel closes the form without writing.
func (f *Flow) Cancel() {
	if f.state == StateSaving {
		return
	}
	f.state = StateViewing
	f.lastErr = nil
}

// Plan computes the writes the current form would perform.
func (f *Flow) Plan() (Plan, error) {
	if f.state != StateEditing && f.state != StateEditingWithError && f.state != StateSaving {
		return Plan{}, ErrNotEditing
	}

	form := f.form
	form.Username = strings.TrimSpace(form.Username)
	form.Team = normalizeTeam(form.Team)
	if form.Username == "" {
		return Plan{}, ErrNoUsername
	}
	if f.user.ID == "" {
		return Plan{}, ErrNoUserID
	}

	plan := Plan{
		UserID: string(f.user.ID),
		User: apiclient.UserUpdate{
			Name:     form.Name,
			Username: form.Username,
			Email:    form.Email,
			Password: form.Password,
		},
	}

	oldUsername := f.origin.Username
	old, inTeam := f.teamByID(f.origin.TeamID)
	switch {
	case form.Team != f.oldTeam:
		if inTeam {
			plan.TeamWrites = append(plan.TeamWrites, TeamWrite{
				Step:     StepOldTeam,
				TeamID:   string(old.ID),
				TeamName: old.Name,
				Before:   cloneMembers(old.Members),
				After:    without(old.Members, oldUsername),
			})
		}
		if form.Team != "" {
			next, ok := f.teamByName(form.Team)
			if !ok {
				return Plan{}, &UnknownTeamError{Team: form.Team}
			}
			plan.TeamWrites = append(plan.TeamWrites, TeamWrite{
				Step:     StepNewTeam,
				TeamID:   string(next.ID),
				TeamName: next.Name,
				Before:   cloneMembers(next.Members),
				After:    withExactlyOnce(without(next.Members, oldUsername), form.Username),
			})
		}
	case inTeam && form.Username != oldUsername:
		plan.TeamWrites = append(plan.TeamWrites, TeamWrite{
			Step:     StepRename,
			TeamID:   string(old.ID),
			TeamName: old.Name,
			Before:   cloneMembers(old.Members),
			After:    renamed(old.Members, oldUsername, form.Username),
		})
	}
	return plan, nil
}

// normalizeTeam maps the "no team" choices of the UIs to the empty name.
func normalizeTeam(name string) string {
	name = strings.TrimSpace(name)
	if name == readmodel.NoTeam {
		return ""
	}
	return name
}

func (f *Flow) teamByName(name string) (apiclient.Team, bool) {
	for _, t := range f.teams {
		if t.Name == name {
			return t, true
		}
	}
	return apiclient.Team{}, false
}

func (f *Flow) teamByID(id string) (apiclient.Team, bool) {
	if id == "" {
		return apiclient.Team{}, false
	}
	for _, t := range f.teams {
		if string(t.ID) == id {
			return t, true
		}
	}
	return apiclient.Team{}, false
}

// Save performs the planned writes in order. On success the flow returns to
// StateViewing; on failure it moves to StateEditingWithError, keeping the form
// so the save can be retried.
func (f *Flow) Save(ctx context.Context) error {
	switch f.state {
	case StateEditing, StateEditingWithError:
	case StateSaving:
		return ErrBusy
	default:
		return ErrNotEditing
	}

	plan, err := f.Plan()
	if err != nil {
		return f.fail(err)
	}

	f.state = StateSaving
	f.logger.Info("saving user",
		zap.String("user_id", plan.UserID),
		zap.String("username", plan.User.Username),
		zap.Int("team_writes", len(plan.TeamWrites)))

	saved, err := f.writer.UpdateUser(ctx, plan.UserID, plan.User)
	if err != nil {
		return f.fail(&SaveError{Step: StepUser, Err: err})
	}
	applied := []Step{StepUser}

	for _, tw := range plan.TeamWrites {
		step := tw.Step
		_, err := f.writer.UpdateTeam(ctx, tw.TeamID, apiclient.TeamUpdate{Name: tw.TeamName, Members: tw.After})
		if err != nil {
			f.logger.Warn("team write failed after earlier writes were applied",
				zap.String("step", string(step)),
				zap.String("team", tw.TeamName),
				zap.Error(err))
			return f.fail(&SaveError{Step: step, Team: tw.TeamName, Applied: applied, Err: err})
		}
		applied = append(applied, step)
		f.applyTeam(tw)
	}

	f.saved = saved
	f.user = apiclient.User{
		ID:       f.user.ID,
		Name:     plan.User.Name,
		Username: plan.User.Username,
		Email:    plan.User.Email,
	}
	f.origin = Origin{Username: plan.User.Username, TeamID: f.origin.TeamID}
	for _, tw := range plan.TeamWrites {
		switch tw.Step {
		case StepOldTeam:
			f.origin.TeamID = ""
		case StepNewTeam:
			f.origin.TeamID = tw.TeamID
		}
	}
	f.oldTeam = normalizeTeam(f.form.Team)
	f.form.Team = f.oldTeam
	f.form.Password = ""
	f.lastErr = nil
	f.state = StateViewing
	return nil
}

// applyTeam keeps the local snapshot in line with a successful team write so
// a retry after a later failure plans against what the server now holds.
func (f *Flow) applyTeam(tw TeamWrite) {
	for i := range f.teams {
		if string(f.teams[i].ID) == tw.TeamID {
			f.teams[i].Members = append(f.teams[i].Members[:0:0], tw.After...)
			return
		}
	}
}

func (f *Flow) fail(err error) error {
	f.lastErr = err
	f.state = StateEditingWithError
	return err
}
