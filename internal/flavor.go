package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Flavor is a single compute sizing tier. Name is the platform's native
// size identifier (an EC2 instance type, an Azure VM size or a GCP machine
// type), CPU and RAMMB describe it for ordering validation.
type Flavor struct {
	Name  string `json:"name"`
	CPU   int    `json:"cpu"`
	RAMMB int    `json:"ramMb"`
	Rank  int    `json:"rank"`
}

// FlavorLadder is the ordered catalog of available sizes, smallest first.
// It is immutable after ParseLadder and safe for concurrent use.
type FlavorLadder []Flavor

// ParseLadder parses a ladder specification of the form
// "name=cpu:ramMB,name=cpu:ramMB,...", ordered smallest first.
func ParseLadder(spec string) (FlavorLadder, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("flavor ladder is empty")
	}

	var ladder FlavorLadder

	for i, entry := range strings.Split(spec, ",") {
		name, sizing, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found || name == "" {
			return nil, fmt.Errorf("could not parse flavor entry %q", entry)
		}

		cpuPart, ramPart, found := strings.Cut(sizing, ":")
		if !found {
			return nil, fmt.Errorf("could not parse sizing for flavor %q", name)
		}

		cpu, err := strconv.Atoi(cpuPart)
		if err != nil {
			return nil, fmt.Errorf("could not parse CPU count for flavor %q: %w", name, err)
		}

		ram, err := strconv.Atoi(ramPart)
		if err != nil {
			return nil, fmt.Errorf("could not parse RAM size for flavor %q: %w", name, err)
		}

		ladder = append(ladder, Flavor{Name: name, CPU: cpu, RAMMB: ram, Rank: i})
	}

	for i := 1; i < len(ladder); i++ {
		if ladder[i].CPU <= ladder[i-1].CPU || ladder[i].RAMMB <= ladder[i-1].RAMMB {
			return nil, fmt.Errorf(
				"flavor %s does not strictly grow over %s in both CPU and RAM",
				ladder[i].Name, ladder[i-1].Name,
			)
		}
	}

	return ladder, nil
}

// MaxRank returns the rank of the largest flavor.
func (l FlavorLadder) MaxRank() int {
	return len(l) - 1
}

// Flavor returns the flavor at the given rank.
func (l FlavorLadder) Flavor(rank int) (Flavor, error) {
	if rank < 0 || rank >= len(l) {
		return Flavor{}, fmt.Errorf("rank %d is outside the ladder", rank)
	}

	return l[rank], nil
}

// RankOf returns the rank of the flavor with the given name.
func (l FlavorLadder) RankOf(name string) (int, bool) {
	for _, flavor := range l {
		if flavor.Name == name {
			return flavor.Rank, true
		}
	}

	return 0, false
}
