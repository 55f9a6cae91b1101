package editflow

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bagdasarian/octofit-tracker/internal/apiclient"
)

// TeamWrite replaces one team's member list.
type TeamWrite struct {
	Step     Step
	TeamID   string
	TeamName string
	Before   []string
	After    []string
}

// Plan is the ordered list of writes a save performs: the user record first,
// then the team member lists (old team before new team).
type Plan struct {
	UserID     string
	User       apiclient.UserUpdate
	TeamWrites []TeamWrite
}

// Diff renders the member list changes line by line, one member per line,
// prefixed with "+" or "-". Unchanged members are prefixed with a space.
func (p Plan) Diff() string {
	if len(p.TeamWrites) == 0 {
		return ""
	}

	dmp := diffmatchpatch.New()
	var out strings.Builder
	for _, tw := range p.TeamWrites {
		fmt.Fprintf(&out, "team %s (%s)\n", tw.TeamName, tw.TeamID)

		before := strings.Join(tw.Before, "\n")
		after := strings.Join(tw.After, "\n")
		if len(tw.Before) > 0 {
			before += "\n"
		}
		if len(tw.After) > 0 {
			after += "\n"
		}

		a, b, lines := dmp.DiffLinesToChars(before, after)
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
		for _, d := range diffs {
			prefix := " "
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				prefix = "+"
			case diffmatchpatch.DiffDelete:
				prefix = "-"
			}
			for _, line := range strings.SplitAfter(d.Text, "\n") {
				if line == "" {
					continue
				}
				out.WriteString(prefix + " " + line)
			}
		}
	}
	return out.String()
}

func without(members []string, username string) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		if m != username {
			out = append(out, m)
		}
	}
	return out
}

// withExactlyOnce returns members with every occurrence of username dropped
// and username appended once at the end.
func withExactlyOnce(members []string, username string) []string {
	return append(without(members, username), username)
}

// renamed replaces oldName with newName in place, keeping a single entry.
func renamed(members []string, oldName, newName string) []string {
	out := make([]string, 0, len(members))
	seen := false
	for _, m := range members {
		if m == oldName || m == newName {
			if seen {
				continue
			}
			seen = true
			out = append(out, newName)
			continue
		}
		out = append(out, m)
	}
	return out
}

func cloneMembers(m []string) []string {
	if m == nil {
		return []string{}
	}
	return slices.Clone(m)
}
