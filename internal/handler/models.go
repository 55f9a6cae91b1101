package handler

import "github.com/bagdasarian/octofit-tracker/internal/decode"

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse is the paginated list envelope.
type PageResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type UserResponse struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserUpdateRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TeamResponse struct {
	ID      string   `json:"_id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// TeamUpdateRequest accepts members as a JSON list or as a string holding an
// encoded list.
type TeamUpdateRequest struct {
	Name    string         `json:"name"`
	Members decode.Strings `json:"members"`
}

type ActivityResponse struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	ActivityType string `json:"activity_type"`
	Duration     string `json:"duration"`
	Calories     int    `json:"calories"`
	Date         string `json:"date"`
}

type LeaderboardResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type WorkoutResponse struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Exercises   []string `json:"exercises"`
}

type StatsResponse struct {
	Users         []UserActivityStatResponse `json:"users"`
	ActivityTypes []ActivityTypeStatResponse `json:"activity_types"`
}

type UserActivityStatResponse struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Activities int    `json:"activities"`
	Calories   int    `json:"calories"`
}

type ActivityTypeStatResponse struct {
	ActivityType string `json:"activity_type"`
	Count        int    `json:"count"`
	Calories     int    `json:"calories"`
}
