package domain

type LeaderboardEntry struct {
	ID       int
	Username string
	Score    int
}
