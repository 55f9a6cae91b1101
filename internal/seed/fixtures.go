// Package seed clears the tracker tables and loads a fixture set.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Users       []UserFixture        `yaml:"users"`
	Teams       []TeamFixture        `yaml:"teams"`
	Activities  []ActivityFixture    `yaml:"activities"`
	Leaderboard []LeaderboardFixture `yaml:"leaderboard"`
	Workouts    []WorkoutFixture     `yaml:"workouts"`
}

type UserFixture struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type TeamFixture struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

type ActivityFixture struct {
	Username     string `yaml:"username"`
	ActivityType string `yaml:"activity_type"`
	Duration     string `yaml:"duration"`
	Calories     int    `yaml:"calories"`
	Date         string `yaml:"date"`
}

type LeaderboardFixture struct {
	Username string `yaml:"username"`
	Score    int    `yaml:"score"`
}

type WorkoutFixture struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Exercises   []string `yaml:"exercises"`
}

// Default returns the built-in superhero fixture set.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// LoadFile reads a fixture set from a YAML file.
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture set.
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	seen := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if u.Username == "" {
			return fmt.Errorf("user #%d: username is required", i+1)
		}
		if seen[u.Username] {
			return fmt.Errorf("user #%d: duplicate username %q", i+1, u.Username)
		}
		seen[u.Username] = true
	}
	for i, t := range f.Teams {
		if t.Name == "" {
			return fmt.Errorf("team #%d: name is required", i+1)
		}
	}
	for i, a := range f.Activities {
		if _, err := a.date(); err != nil {
			return fmt.Errorf("activity #%d: %w", i+1, err)
		}
	}
	return nil
}

func (a ActivityFixture) date() (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateLayout, a.Date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", a.Date, err)
	}
	return d, nil
}
