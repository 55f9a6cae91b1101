package apiclient

import "github.com/bagdasarian/octofit-tracker/internal/decode"

// Resource paths served by the tracker API.
const (
	PathUsers       = "/api/users/"
	PathTeams       = "/api/teams/"
	PathActivities  = "/api/activities/"
	PathWorkouts    = "/api/workouts/"
	PathLeaderboard = "/api/leaderboard/"
)

type User struct {
	ID       decode.Text `json:"_id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
}

type Team struct {
	ID      decode.Text    `json:"_id"`
	Name    string         `json:"name"`
	Members decode.Strings `json:"members"`
}

type Activity struct {
	ID           decode.Text  `json:"_id"`
	Username     string       `json:"username"`
	ActivityType string       `json:"activity_type"`
	Duration     decode.Text  `json:"duration"`
	Calories     decode.Float `json:"calories"`
	Date         string       `json:"date"`
}

type Workout struct {
	ID          decode.Text    `json:"_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Exercises   decode.Strings `json:"exercises"`
}

type LeaderboardEntry struct {
	ID       decode.Text `json:"_id"`
	Username string      `json:"username"`
	Score    decode.Text `json:"score"`
}

// UserUpdate is the PUT body for a user. Password is omitted when empty so
// the stored password is kept.
type UserUpdate struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// TeamUpdate replaces a team's name and full member list.
type TeamUpdate struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}
