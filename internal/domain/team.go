package domain

type Team struct {
	ID      int
	Name    string
	Members []string
}

// HasMember reports whether username is listed in the team.
func (t *Team) HasMember(username string) bool {
	for _, m := range t.Members {
		if m == username {
			return true
		}
	}
	return false
}

// TeamUpdate replaces the team's name and its whole member list.
type TeamUpdate struct {
	Name    string
	Members []string
}
