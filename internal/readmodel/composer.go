// Package readmodel joins independently fetched collections into the rows the
// dashboard views display.
//
// Every function here is a pure function of the snapshots it is given. Nothing
// is cached: joins are recomputed per row, which costs O(teams) and
// O(activities) per lookup.
package readmodel

import "github.com/bagdasarian/octofit-tracker/internal/apiclient"

// NoTeam is returned by TeamForUser when no team lists the username.
const NoTeam = "No team"

// Composer resolves per-user joins over a teams and activities snapshot.
type Composer struct {
	teams      []apiclient.Team
	activities []apiclient.Activity
}

func NewComposer(teams []apiclient.Team, activities []apiclient.Activity) *Composer {
	return &Composer{teams: teams, activities: activities}
}

// TeamForUser returns the name of the first team, in list order, whose
// members include username, or NoTeam.
func (c *Composer) TeamForUser(username string) string {
	if team, ok := c.teamOf(username); ok {
		return team.Name
	}
	return NoTeam
}

// TeamOf returns the first team whose members include username.
func (c *Composer) TeamOf(username string) (apiclient.Team, bool) {
	return c.teamOf(username)
}

func (c *Composer) teamOf(username string) (apiclient.Team, bool) {
	for _, team := range c.teams {
		for _, member := range team.Members {
			if member == username {
				return team, true
			}
		}
	}
	return apiclient.Team{}, false
}

// CaloriesForUser sums the coerced calories of every activity logged by
// username. Non-numeric calories count as zero.
func (c *Composer) CaloriesForUser(username string) float64 {
	var total float64
	for _, a := range c.activities {
		if a.Username == username {
			total += float64(a.Calories)
		}
	}
	return total
}
