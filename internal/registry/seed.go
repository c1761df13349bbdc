package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
)

// builtinSeed is the catalog the service starts with when no seed file is
// configured. Names are the registry keys and stay fixed for the life of
// the process.
var builtinSeed = map[string]Activity{
	"Chess Club": {
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	"Programming Class": {
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	"Gym Class": {
		Description:     "Physical education and sports activities",
		Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	"Basketball Team": {
		Description:     "Competitive basketball team for interscholastic games",
		Schedule:        "Mondays and Thursdays, 4:00 PM - 5:30 PM",
		MaxParticipants: 15,
		Participants:    []string{"alex@mergington.edu"},
	},
	"Tennis Club": {
		Description:     "Learn tennis skills and participate in friendly matches",
		Schedule:        "Wednesdays and Saturdays, 3:00 PM - 4:30 PM",
		MaxParticipants: 10,
		Participants:    []string{"lucas@mergington.edu", "ava@mergington.edu"},
	},
	"Debate Club": {
		Description:     "Develop critical thinking and public speaking skills",
		Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 16,
		Participants:    []string{"sarah@mergington.edu"},
	},
	"Science Club": {
		Description:     "Conduct experiments and explore scientific concepts",
		Schedule:        "Wednesdays, 3:30 PM - 4:30 PM",
		MaxParticipants: 18,
		Participants:    []string{"james@mergington.edu", "mia@mergington.edu"},
	},
	"Drama Club": {
		Description:     "Perform in theatrical productions and develop acting skills",
		Schedule:        "Mondays and Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 25,
		Participants:    []string{"grace@mergington.edu", "ethan@mergington.edu"},
	},
	"Art Studio": {
		Description:     "Create paintings, drawings, and sculptures",
		Schedule:        "Tuesdays and Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 20,
		Participants:    []string{"isabella@mergington.edu"},
	},
}

// Seed returns a fresh copy of the built-in catalog. Each call is
// independent, so a caller may mutate the result freely.
func Seed() map[string]Activity {
	out := make(map[string]Activity, len(builtinSeed))
	for name, activity := range builtinSeed {
		activity.Participants = slices.Clone(activity.Participants)
		out[name] = activity
	}
	return out
}

type seedFile struct {
	Activities map[string]Activity `toml:"activities"`
}

// LoadSeedFile reads a replacement catalog from a TOML file. Each activity
// is a table under [activities."Name"]. The result still goes through New,
// which performs the actual validation.
func LoadSeedFile(path string) (map[string]Activity, error) {
	var sf seedFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(sf.Activities) == 0 {
		return nil, errors.New("seed file defines no activities")
	}
	return sf.Activities, nil
}
