// Package seed provides the activity catalog the registry starts from,
// either the built-in school defaults or a YAML file.
package seed

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mergington/activities/internal/domain/roster"
	"github.com/mergington/activities/internal/domain/types"
)

// Activities returns the default catalog of extracurricular activities.
// Each call returns fresh copies, so callers may mutate the result freely.
func Activities() []types.Activity {
	return []types.Activity{
		{
			Name:            "Soccer Team",
			Description:     "Join our competitive soccer team and represent Mergington High",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"alex@mergington.edu", "sarah@mergington.edu"},
		},
		{
			Name:            "Swimming Club",
			Description:     "Improve your swimming technique and compete in inter-school meets",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"david@mergington.edu", "emily@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Perform in school plays and develop acting skills",
			Schedule:        "Wednesdays, 3:30 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"lisa@mergington.edu", "mark@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"jennifer@mergington.edu", "robert@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop critical thinking and public speaking skills through competitive debates",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"william@mergington.edu", "amanda@mergington.edu"},
		},
		{
			Name:            "Science Olympiad",
			Description:     "Compete in science competitions and conduct exciting experiments",
			Schedule:        "Fridays, 3:30 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"kevin@mergington.edu", "patricia@mergington.edu"},
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

// fileCatalog mirrors the YAML seed file layout.
type fileCatalog struct {
	Activities []fileActivity `koanf:"activities"`
}

type fileActivity struct {
	Name            string   `koanf:"name"`
	Description     string   `koanf:"description"`
	Schedule        string   `koanf:"schedule"`
	MaxParticipants int      `koanf:"max_participants"`
	Participants    []string `koanf:"participants"`
}

// FromFile loads an activity catalog from a YAML file. Activity names must
// be unique and non-empty; duplicate participants within an activity are
// collapsed to their first occurrence.
func FromFile(ctx context.Context, path string) ([]types.Activity, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}

	var catalog fileCatalog
	if err := k.UnmarshalWithConf("", &catalog, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	if len(catalog.Activities) == 0 {
		return nil, ErrNoActivities
	}

	seen := make(map[string]struct{}, len(catalog.Activities))
	out := make([]types.Activity, 0, len(catalog.Activities))
	for _, a := range catalog.Activities {
		if a.Name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, a.Name)
		}
		seen[a.Name] = struct{}{}

		out = append(out, types.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    roster.New(a.Participants...).Members(),
		})
	}
	return out, nil
}
