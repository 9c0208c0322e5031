package main

import (
	"fmt"
	"sort"

	"coevo/internal/config"
)

type profile struct {
	ID          string
	Description string
	apply       func(*config.Experiment)
}

var profiles = map[string]profile{
	"fig1": {
		ID:          "fig1",
		Description: "no coevolutionary pressure (f0 scorer), A starts at 0 and B at 100",
		apply: func(e *config.Experiment) {
			e.Seed = 0
			e.Scorer.Kind = "f0"
			e.Population.InitialValueA = 0
			e.Population.InitialValueB = 100
		},
	},
	"fig2": {
		ID:          "fig2",
		Description: "transitive minimal substrate, one 100-bit trait",
		apply: func(e *config.Experiment) {
			e.Seed = 1
		},
	},
	"fig3": {
		ID:          "fig3",
		Description: "single opponent sample per assessment",
		apply: func(e *config.Experiment) {
			e.Seed = 8486058433753192762
			e.Scorer.SampleSize = 1
		},
	},
	"fig4": {
		ID:          "fig4",
		Description: "ten 10-bit traits, transitive",
		apply: func(e *config.Experiment) {
			e.Seed = 59759543964706904
			e.Population.TraitCount = 10
			e.Population.TraitBits = 10
		},
	},
	"fig5": {
		ID:          "fig5",
		Description: "two 50-bit traits, intransitive",
		apply: func(e *config.Experiment) {
			e.Seed = 5706501168717675099
			e.Population.TraitCount = 2
			e.Population.TraitBits = 50
			e.Scorer.Intransitive = true
		},
	},
}

// loadProfile returns Default with the named profile applied.
func loadProfile(id string) (*config.Experiment, error) {
	p, ok := profiles[id]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s (valid: %v)", id, profileIDs())
	}
	exp := config.Default()
	exp.Name = p.ID
	exp.FixedSeed = true
	p.apply(exp)
	return exp, nil
}

func listProfiles() []profile {
	out := make([]profile, 0, len(profiles))
	for _, id := range profileIDs() {
		out = append(out, profiles[id])
	}
	return out
}

func profileIDs() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
