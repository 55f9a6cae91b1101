// Package tui renders the tracker's views in the terminal and hosts the
// interactive user editor.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
	"github.com/bagdasarian/octofit-tracker/internal/snapshot"
)

// Resources lists the view names accepted by Load, in menu order.
var Resources = []string{"activities", "leaderboard", "teams", "users", "workouts"}

// View is one rendered resource: display cells plus the typed rows they were
// built from.
type View struct {
	Title   string
	Empty   string
	Headers []string
	Cells   [][]string
	Rows    any
}

type resource struct {
	title   string
	need    snapshot.Need
	columns []string
	build   func(s *snapshot.Snapshot, sort readmodel.Sort, p *message.Printer) (View, error)
}

var resources = map[string]resource{
	"activities":  {"Activities", snapshot.NeedActivities, readmodel.ActivityColumns, activitiesView},
	"leaderboard": {"Leaderboard", snapshot.ForLeaderboard, readmodel.LeaderboardColumns, leaderboardView},
	"teams":       {"Teams", snapshot.NeedTeams, readmodel.TeamColumns, teamsView},
	"users":       {"Users", snapshot.ForUsers, readmodel.UserColumns, usersView},
	"workouts":    {"Workouts", snapshot.NeedWorkouts, readmodel.WorkoutColumns, workoutsView},
}

// Load fetches what the named view needs and builds it sorted by s. An empty
// sort column keeps server order.
func Load(ctx context.Context, src snapshot.Source, name string, s readmodel.Sort) (View, error) {
	res, ok := resources[name]
	if !ok {
		return View{}, fmt.Errorf("unknown resource %q (one of %s)", name, strings.Join(Resources, ", "))
	}
	if s.Column != "" && !readmodel.IsColumn(res.columns, s.Column) {
		return View{}, fmt.Errorf("cannot sort %s by %q (one of %s)", name, s.Column, strings.Join(res.columns, ", "))
	}

	snap, err := snapshot.Load(ctx, src, res.need)
	if err != nil {
		return View{}, err
	}

	v, err := res.build(snap, s, message.NewPrinter(language.English))
	if err != nil {
		return View{}, err
	}
	v.Title = res.title
	v.Empty = "No " + name + " found."
	if name == "leaderboard" {
		v.Empty = "No leaderboard entries found."
	}
	return v, nil
}

func calories(p *message.Printer, v float64) string {
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + " kcal"
}

func usersView(s *snapshot.Snapshot, sort readmodel.Sort, p *message.Printer) (View, error) {
	rows := readmodel.UserRows(s.Users, s.Composer(), sort)
	v := View{Headers: []string{"#", "Username", "Name", "Email", "Team", "Calories"}, Rows: rows}
	for _, r := range rows {
		v.Cells = append(v.Cells, []string{strconv.Itoa(r.Index), r.Username, r.Name, r.Email, r.Team, calories(p, r.Calories)})
	}
	return v, nil
}

func leaderboardView(s *snapshot.Snapshot, sort readmodel.Sort, p *message.Printer) (View, error) {
	rows := readmodel.LeaderboardRows(s.Leaderboard, s.Composer(), sort)
	v := View{Headers: []string{"Rank", "Username", "Team", "Total Calories", "Score"}, Rows: rows}
	for _, r := range rows {
		v.Cells = append(v.Cells, []string{strconv.Itoa(r.Rank), r.Username, r.Team, calories(p, r.Calories), r.Score})
	}
	return v, nil
}

func teamsView(s *snapshot.Snapshot, sort readmodel.Sort, _ *message.Printer) (View, error) {
	rows := readmodel.TeamRows(s.Teams, sort)
	v := View{Headers: []string{"#", "Team Name", "Members", "Member Count"}, Rows: rows}
	for _, r := range rows {
		v.Cells = append(v.Cells, []string{strconv.Itoa(r.Index), r.Name, strings.Join(r.Members, ", "), strconv.Itoa(r.MemberCount())})
	}
	return v, nil
}

func activitiesView(s *snapshot.Snapshot, sort readmodel.Sort, p *message.Printer) (View, error) {
	rows := readmodel.ActivityRows(s.Activities, sort)
	v := View{Headers: []string{"#", "Username", "Activity Type", "Duration", "Calories", "Date"}, Rows: rows}
	for _, r := range rows {
		v.Cells = append(v.Cells, []string{strconv.Itoa(r.Index), r.Username, r.ActivityType, r.Duration, calories(p, r.Calories), r.Date})
	}
	return v, nil
}

func workoutsView(s *snapshot.Snapshot, sort readmodel.Sort, _ *message.Printer) (View, error) {
	rows := readmodel.WorkoutRows(s.Workouts, sort)
	v := View{Headers: []string{"#", "Name", "Description", "Exercises"}, Rows: rows}
	for _, r := range rows {
		v.Cells = append(v.Cells, []string{strconv.Itoa(r.Index), r.Name, r.Description, strings.Join(r.Exercises, "; ")})
	}
	return v, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Table renders v as a bordered terminal table.
func (v View) Table() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(v.Title))
	sb.WriteString("\n")

	if len(v.Cells) == 0 {
		sb.WriteString(mutedStyle.Render(v.Empty))
		sb.WriteString("\n")
		return sb.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(v.Headers...).
		Rows(v.Cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	sb.WriteString(t.String())
	sb.WriteString("\n")
	return sb.String()
}

// Write prints v to w as a table or as indented JSON rows.
func (v View) Write(w io.Writer, format string) error {
	switch format {
	case "", "table":
		_, err := io.WriteString(w, v.Table())
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Rows)
	default:
		return fmt.Errorf("unknown format %q (table or json)", format)
	}
}

// ErrorLine renders err the way views report a failed fetch.
func ErrorLine(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// IsResource reports whether name is a known view.
func IsResource(name string) bool {
	return slices.Contains(Resources, name)
}
