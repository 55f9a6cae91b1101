package dashboard

import (
	"net/url"

	"github.com/bagdasarian/octofit-tracker/internal/editflow"
	"github.com/bagdasarian/octofit-tracker/internal/readmodel"
)

type NavLink struct {
	Label  string
	Href   string
	Active bool
}

var navItems = []NavLink{
	{Label: "Activities", Href: "/activities"},
	{Label: "Leaderboard", Href: "/leaderboard"},
	{Label: "Teams", Href: "/teams"},
	{Label: "Users", Href: "/users"},
	{Label: "Workouts", Href: "/workouts"},
}

func navFor(path string) []NavLink {
	nav := make([]NavLink, len(navItems))
	for i, item := range navItems {
		item.Active = item.Href == path
		nav[i] = item
	}
	return nav
}

// Column is a table header cell. Sortable columns carry the link that
// selects them (or flips the direction when already selected).
type Column struct {
	Label  string
	Href   string
	Active bool
	Desc   bool
}

// columnLabels maps sortable keys to header text.
var columnLabels = map[string]string{
	"rank":          "Rank",
	"username":      "Username",
	"name":          "Name",
	"email":         "Email",
	"team":          "Team",
	"calories":      "Calories",
	"score":         "Score",
	"members":       "Members",
	"activity_type": "Activity Type",
	"duration":      "Duration",
	"date":          "Date",
	"description":   "Description",
	"exercises":     "Exercises",
}

// headerRow builds the header for keys, in order. A key of "" is a
// non-sortable column labelled by the matching entry of plain.
func headerRow(path string, s readmodel.Sort, keys []string, plain map[int]string) []Column {
	cols := make([]Column, 0, len(keys))
	for i, key := range keys {
		if key == "" {
			cols = append(cols, Column{Label: plain[i]})
			continue
		}
		active := s.Column == key
		dir := "asc"
		if active && !s.Desc {
			dir = "desc"
		}
		q := url.Values{"sort": {key}, "dir": {dir}}
		cols = append(cols, Column{
			Label:  columnLabels[key],
			Href:   path + "?" + q.Encode(),
			Active: active,
			Desc:   active && s.Desc,
		})
	}
	return cols
}

type basePage struct {
	Title string
	Nav   []NavLink
	Error string
}

type activitiesPage struct {
	basePage
	Columns []Column
	Rows    []readmodel.ActivityRow
}

type leaderboardPage struct {
	basePage
	Columns []Column
	Rows    []readmodel.LeaderboardRow
}

type teamsPage struct {
	basePage
	Columns []Column
	Rows    []readmodel.TeamRow
}

type usersPage struct {
	basePage
	Notice  string
	Columns []Column
	Rows    []readmodel.UserRow
}

type workoutsPage struct {
	basePage
	Columns []Column
	Rows    []readmodel.WorkoutRow
}

type editUser struct {
	ID       string
	Username string
}

type editPage struct {
	basePage
	User    editUser
	Form    editflow.Form
	Origin  editflow.Origin
	Teams   []string
	NoTeam  string
	Preview string
}
