package fixture

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

var words = strings.Fields(`amber basalt cedar delta ember fjord granite harbor
indigo juniper kestrel lagoon meadow nickel orchard pebble quartz river sierra
tundra umber valley willow xenon yarrow zephyr`)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	Count int
	// Seed makes the output reproducible, ids included.
	Seed int64
	// MinHeight and MaxHeight bound the fixed height written to each brick.
	// Heights are omitted when MaxHeight is zero, leaving measurement to the host.
	MinHeight int
	MaxHeight int
	// Children is the number of inline children to add ahead of the bricks.
	Children int
}

// Generate builds a random fixture with uuid ids and bodies of varying length.
func Generate(opts GenerateOptions) (File, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	f := File{Bricks: make([]Brick, 0, opts.Count)}
	for i := 0; i < opts.Children; i++ {
		f.Children = append(f.Children, Child{
			Title:  fmt.Sprintf("Pinned %d", i+1),
			Body:   sentence(rng, 4+rng.Intn(8)),
			Height: height(rng, opts),
		})
	}

	for i := 0; i < opts.Count; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return File{}, fmt.Errorf("fixture: generate id: %w", err)
		}
		f.Bricks = append(f.Bricks, Brick{
			ID:     id.String(),
			Title:  capitalize(words[rng.Intn(len(words))]) + " " + words[rng.Intn(len(words))],
			Body:   sentence(rng, 3+rng.Intn(40)),
			Tags:   []string{words[rng.Intn(len(words))]},
			Height: height(rng, opts),
		})
	}
	return f, nil
}

func sentence(rng *rand.Rand, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	return strings.Join(parts, " ") + "."
}

func height(rng *rand.Rand, opts GenerateOptions) int {
	if opts.MaxHeight <= 0 {
		return 0
	}
	lo := opts.MinHeight
	if lo <= 0 || lo > opts.MaxHeight {
		lo = 1
	}
	return lo + rng.Intn(opts.MaxHeight-lo+1)
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
