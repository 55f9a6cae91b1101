package domain

type Workout struct {
	ID          int
	Name        string
	Description string
	Exercises   []string
}
