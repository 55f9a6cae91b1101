package domain

// UserActivityStat totals one user's logged activities.
type UserActivityStat struct {
	UserID     int
	Username   string
	Activities int
	Calories   int
}

type ActivityTypeStat struct {
	ActivityType string
	Count        int
	Calories     int
}
