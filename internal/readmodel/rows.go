package readmodel

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
	"github.com/bagdasarian/octofit-tracker/internal/decode"
)

// Sort selects the column a table is ordered by. An empty or unknown Column
// keeps the server order.
type Sort struct {
	Column string
	Desc   bool
}

type UserRow struct {
	Index    int
	ID       string
	Name     string
	Username string
	Email    string
	Team     string
	Calories float64
}

type LeaderboardRow struct {
	Rank     int
	Username string
	Team     string
	Calories float64
	Score    string
}

type TeamRow struct {
	Index   int
	ID      string
	Name    string
	Members []string
}

func (r TeamRow) MemberCount() int { return len(r.Members) }

type ActivityRow struct {
	Index        int
	Username     string
	ActivityType string
	Duration     string
	Calories     float64
	RawDate      string
	Date         string
}

type WorkoutRow struct {
	Index       int
	Name        string
	Description string
	Exercises   []string
}

// Sortable column names per view, in display order.
var (
	UserColumns        = []string{"username", "name", "email", "team", "calories"}
	LeaderboardColumns = []string{"rank", "username", "team", "calories", "score"}
	TeamColumns        = []string{"name", "members"}
	ActivityColumns    = []string{"username", "activity_type", "duration", "calories", "date"}
	WorkoutColumns     = []string{"name", "description", "exercises"}
)

var userOrder = map[string]func(a, b UserRow) int{
	"username": func(a, b UserRow) int { return compareText(a.Username, b.Username) },
	"name":     func(a, b UserRow) int { return compareText(a.Name, b.Name) },
	"email":    func(a, b UserRow) int { return compareText(a.Email, b.Email) },
	"team":     func(a, b UserRow) int { return compareText(a.Team, b.Team) },
	"calories": func(a, b UserRow) int { return cmp.Compare(a.Calories, b.Calories) },
}

var leaderboardOrder = map[string]func(a, b LeaderboardRow) int{
	"rank":     func(a, b LeaderboardRow) int { return cmp.Compare(a.Rank, b.Rank) },
	"username": func(a, b LeaderboardRow) int { return compareText(a.Username, b.Username) },
	"team":     func(a, b LeaderboardRow) int { return compareText(a.Team, b.Team) },
	"calories": func(a, b LeaderboardRow) int { return cmp.Compare(a.Calories, b.Calories) },
	"score":    func(a, b LeaderboardRow) int { return compareValue(a.Score, b.Score) },
}

var teamOrder = map[string]func(a, b TeamRow) int{
	"name":    func(a, b TeamRow) int { return compareText(a.Name, b.Name) },
	"members": func(a, b TeamRow) int { return cmp.Compare(len(a.Members), len(b.Members)) },
}

var activityOrder = map[string]func(a, b ActivityRow) int{
	"username":      func(a, b ActivityRow) int { return compareText(a.Username, b.Username) },
	"activity_type": func(a, b ActivityRow) int { return compareText(a.ActivityType, b.ActivityType) },
	"duration":      func(a, b ActivityRow) int { return compareValue(a.Duration, b.Duration) },
	"calories":      func(a, b ActivityRow) int { return cmp.Compare(a.Calories, b.Calories) },
	"date":          func(a, b ActivityRow) int { return cmp.Compare(a.RawDate, b.RawDate) },
}

var workoutOrder = map[string]func(a, b WorkoutRow) int{
	"name":        func(a, b WorkoutRow) int { return compareText(a.Name, b.Name) },
	"description": func(a, b WorkoutRow) int { return compareText(a.Description, b.Description) },
	"exercises":   func(a, b WorkoutRow) int { return cmp.Compare(len(a.Exercises), len(b.Exercises)) },
}

// UserRows builds the Users table, joining each user's team and calorie total.
func UserRows(users []apiclient.User, c *Composer, s Sort) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:       string(u.ID),
			Name:     u.Name,
			Username: u.Username,
			Email:    u.Email,
			Team:     c.TeamForUser(u.Username),
			Calories: c.CaloriesForUser(u.Username),
		})
	}
	sortRows(rows, s, userOrder)
	for i := range rows {
		rows[i].Index = i + 1
	}
	return rows
}

// LeaderboardRows builds the Leaderboard table. Rank is the server order and
// is kept when the rows are re-sorted; scores are displayed as received.
func LeaderboardRows(entries []apiclient.LeaderboardEntry, c *Composer, s Sort) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, LeaderboardRow{
			Rank:     i + 1,
			Username: e.Username,
			Team:     c.TeamForUser(e.Username),
			Calories: c.CaloriesForUser(e.Username),
			Score:    string(e.Score),
		})
	}
	sortRows(rows, s, leaderboardOrder)
	return rows
}

func TeamRows(teams []apiclient.Team, s Sort) []TeamRow {
	rows := make([]TeamRow, 0, len(teams))
	for _, t := range teams {
		members := []string(t.Members)
		if members == nil {
			members = []string{}
		}
		rows = append(rows, TeamRow{ID: string(t.ID), Name: t.Name, Members: members})
	}
	sortRows(rows, s, teamOrder)
	for i := range rows {
		rows[i].Index = i + 1
	}
	return rows
}

func ActivityRows(activities []apiclient.Activity, s Sort) []ActivityRow {
	rows := make([]ActivityRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, ActivityRow{
			Username:     a.Username,
			ActivityType: a.ActivityType,
			Duration:     string(a.Duration),
			Calories:     float64(a.Calories),
			RawDate:      a.Date,
			Date:         decode.FormatDate(a.Date),
		})
	}
	sortRows(rows, s, activityOrder)
	for i := range rows {
		rows[i].Index = i + 1
	}
	return rows
}

func WorkoutRows(workouts []apiclient.Workout, s Sort) []WorkoutRow {
	rows := make([]WorkoutRow, 0, len(workouts))
	for _, w := range workouts {
		exercises := []string(w.Exercises)
		if exercises == nil {
			exercises = []string{}
		}
		rows = append(rows, WorkoutRow{Name: w.Name, Description: w.Description, Exercises: exercises})
	}
	sortRows(rows, s, workoutOrder)
	for i := range rows {
		rows[i].Index = i + 1
	}
	return rows
}

func sortRows[R any](rows []R, s Sort, order map[string]func(a, b R) int) {
	less, ok := order[s.Column]
	if !ok {
		return
	}
	slices.SortStableFunc(rows, func(a, b R) int {
		if s.Desc {
			return less(b, a)
		}
		return less(a, b)
	})
}

func compareText(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareValue orders numerically when both values lead with a number
// ("60 mins", "980"), otherwise as text.
func compareValue(a, b string) int {
	fa, okA := leadingNumber(a)
	fb, okB := leadingNumber(b)
	if okA && okB {
		if c := cmp.Compare(fa, fb); c != 0 {
			return c
		}
	}
	return compareText(a, b)
}

func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// IsColumn reports whether column is one of cols.
func IsColumn(cols []string, column string) bool {
	return slices.Contains(cols, column)
}
