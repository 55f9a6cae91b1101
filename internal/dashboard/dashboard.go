// Package dashboard serves the tracker's HTML views. Every page fetches its
// data from the REST API on each request; nothing is cached between requests.
package dashboard

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
	"github.com/bagdasarian/octofit-tracker/internal/snapshot"
)

// Client is the API surface the dashboard reads from and writes to.
// *apiclient.Client implements it.
type Client interface {
	snapshot.Source
	editflow.Writer
}

type Dashboard struct {
	client  Client
	logger  *zap.Logger
	pages   map[string]*template.Template
	numbers numberFormatter
}

func New(client Client, logger *zap.Logger) (*Dashboard, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{
		client:  client,
		logger:  logger,
		numbers: newNumberFormatter(language.English),
	}

	pages, err := parseTemplates(template.FuncMap{
		"calories": d.numbers.Calories,
		"number":   d.numbers.Number,
	})
	if err != nil {
		return nil, err
	}
	d.pages = pages
	return d, nil
}

// Routes returns the dashboard's request router.
func (d *Dashboard) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.home)
	mux.HandleFunc("GET /activities", d.activities)
	mux.HandleFunc("GET /leaderboard", d.leaderboard)
	mux.HandleFunc("GET /teams", d.teams)
	mux.HandleFunc("GET /users", d.users)
	mux.HandleFunc("GET /workouts", d.workouts)
	mux.HandleFunc("GET /users/{id}/edit", d.editForm)
	mux.HandleFunc("POST /users/{id}/edit", d.editSave)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFiles())))
	return mux
}

func (d *Dashboard) base(r *http.Request, title string) basePage {
	return basePage{Title: title, Nav: navFor(r.URL.Path)}
}

// sortFrom reads ?sort=&dir= and drops columns the view does not know.
func sortFrom(r *http.Request, columns []string) readmodel.Sort {
	q := r.URL.Query()
	column := q.Get("sort")
	if !readmodel.IsColumn(columns, column) {
		return readmodel.Sort{}
	}
	return readmodel.Sort{Column: column, Desc: strings.EqualFold(q.Get("dir"), "desc")}
}

// loadError logs a failed fetch and returns the banner text.
func (d *Dashboard) loadError(r *http.Request, err error) string {
	if r.Context().Err() != nil {
		d.logger.Debug("request canceled while loading", zap.String("path", r.URL.Path))
	} else {
		d.logger.Warn("failed to load view data", zap.String("path", r.URL.Path), zap.Error(err))
	}
	return err.Error()
}

func (d *Dashboard) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := d.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		d.logger.Error("render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (d *Dashboard) home(w http.ResponseWriter, r *http.Request) {
	d.render(w, http.StatusOK, "home", d.base(r, "Home"))
}

func (d *Dashboard) activities(w http.ResponseWriter, r *http.Request) {
	s := sortFrom(r, readmodel.ActivityColumns)
	page := activitiesPage{
		basePage: d.base(r, "Activities"),
		Columns:  headerRow(r.URL.Path, s, append([]string{""}, readmodel.ActivityColumns...), map[int]string{0: "#"}),
	}

	snap, err := snapshot.Load(r.Context(), d.client, snapshot.NeedActivities)
	if err != nil {
		page.Error = d.loadError(r, err)
	} else {
		page.Rows = readmodel.ActivityRows(snap.Activities, s)
	}
	d.render(w, http.StatusOK, "activities", page)
}

func (d *Dashboard) leaderboard(w http.ResponseWriter, r *http.Request) {
	s := sortFrom(r, readmodel.LeaderboardColumns)
	page := leaderboardPage{
		basePage: d.base(r, "Leaderboard"),
		Columns:  headerRow(r.URL.Path, s, readmodel.LeaderboardColumns, nil),
	}

	snap, err := snapshot.Load(r.Context(), d.client, snapshot.ForLeaderboard)
	if err != nil {
		page.Error = d.loadError(r, err)
	} else {
		page.Rows = readmodel.LeaderboardRows(snap.Leaderboard, snap.Composer(), s)
	}
	d.render(w, http.StatusOK, "leaderboard", page)
}

func (d *Dashboard) teams(w http.ResponseWriter, r *http.Request) {
	s := sortFrom(r, readmodel.TeamColumns)
	page := teamsPage{
		basePage: d.base(r, "Teams"),
		Columns: headerRow(r.URL.Path, s, []string{"", "name", "", "members"},
			map[int]string{0: "#", 2: "Members"}),
	}
	page.Columns[1].Label = "Team Name"
	page.Columns[3].Label = "Member Count"

	snap, err := snapshot.Load(r.Context(), d.client, snapshot.NeedTeams)
	if err != nil {
		page.Error = d.loadError(r, err)
	} else {
		page.Rows = readmodel.TeamRows(snap.Teams, s)
	}
	d.render(w, http.StatusOK, "teams", page)
}

func (d *Dashboard) users(w http.ResponseWriter, r *http.Request) {
	s := sortFrom(r, readmodel.UserColumns)
	page := usersPage{
		basePage: d.base(r, "Users"),
		Columns: headerRow(r.URL.Path, s, append(append([]string{""}, readmodel.UserColumns...), ""),
			map[int]string{0: "#"}),
	}
	if saved := r.URL.Query().Get("saved"); saved != "" {
		page.Notice = "Saved " + saved + "."
	}

	snap, err := snapshot.Load(r.Context(), d.client, snapshot.ForUsers)
	if err != nil {
		page.Error = d.loadError(r, err)
	} else {
		page.Rows = readmodel.UserRows(snap.Users, snap.Composer(), s)
	}
	d.render(w, http.StatusOK, "users", page)
}

func (d *Dashboard) workouts(w http.ResponseWriter, r *http.Request) {
	s := sortFrom(r, readmodel.WorkoutColumns)
	page := workoutsPage{
		basePage: d.base(r, "Workouts"),
		Columns:  headerRow(r.URL.Path, s, append([]string{""}, readmodel.WorkoutColumns...), map[int]string{0: "#"}),
	}

	snap, err := snapshot.Load(r.Context(), d.client, snapshot.NeedWorkouts)
	if err != nil {
		page.Error = d.loadError(r, err)
	} else {
		page.Rows = readmodel.WorkoutRows(snap.Workouts, s)
	}
	d.render(w, http.StatusOK, "workouts", page)
}

func savedRedirect(username string) string {
	return "/users?" + url.Values{"saved": {username}}.Encode()
}
