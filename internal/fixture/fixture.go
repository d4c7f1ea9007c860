// Package fixture reads and writes brick catalogs stored as TOML files.
//
// A fixture has two lists: [[child]] entries become inline children, laid out
// before the data items, and [[brick]] entries are the data items keyed by id.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	waterfall "github.com/grindlemire/go-waterfall"
)

// Child is a static item placed ahead of the data items.
type Child struct {
	Title string `toml:"title"`
	Body  string `toml:"body,omitempty"`
	// Height overrides the measured height in headless runs.
	Height int `toml:"height,omitempty"`
	// Hidden keeps the slot (and so the ids of later children) but skips the item.
	Hidden bool `toml:"hidden,omitempty"`
}

// Brick is one data item.
type Brick struct {
	ID     string   `toml:"id"`
	Title  string   `toml:"title"`
	Body   string   `toml:"body,omitempty"`
	Tags   []string `toml:"tags,omitempty"`
	Height int      `toml:"height,omitempty"`
}

// File is the on-disk fixture.
type File struct {
	Children []Child `toml:"child,omitempty"`
	Bricks   []Brick `toml:"brick"`
}

// Load reads a fixture from path. A leading ~ is expanded.
func Load(path string) (File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return File{}, fmt.Errorf("fixture: expand %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return File{}, fmt.Errorf("fixture: read %s: %w", expanded, err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("fixture: %s: %w", expanded, err)
	}
	return f, nil
}

// Decode parses a fixture. Unknown keys are rejected so typos surface early.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode: %w", err)
	}
	for i, b := range f.Bricks {
		if b.ID == "" {
			return File{}, fmt.Errorf("decode: brick %d has no id", i)
		}
	}
	return f, nil
}

// Save writes f to path, creating parent directories as needed.
func Save(path string, f File) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("fixture: expand %q: %w", path, err)
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("fixture: encode: %w", err)
	}
	if dir := filepath.Dir(expanded); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fixture: ensure dir: %w", err)
		}
	}
	if err := os.WriteFile(expanded, data, 0o644); err != nil {
		return fmt.Errorf("fixture: write %s: %w", expanded, err)
	}
	return nil
}

// Catalog converts the fixture into an engine catalog.
func (f File) Catalog() waterfall.Catalog {
	return waterfall.BuildCatalog(f.children(), f.Bricks, brickID)
}

// Apply replaces e's items with the fixture's children and bricks.
func (f File) Apply(e *waterfall.Engine) waterfall.Decision {
	return waterfall.SetItems(e, f.children(), f.Bricks, brickID)
}

// children lists the inline children. Hidden ones become nil slots so the
// remaining children keep their ids.
func (f File) children() []any {
	out := make([]any, len(f.Children))
	for i, c := range f.Children {
		if c.Hidden {
			continue
		}
		out[i] = c
	}
	return out
}

func brickID(b Brick) string { return b.ID }

// Height returns the fixed height recorded for item, if any.
func Height(item waterfall.Item) (int, bool) {
	switch p := item.Payload.(type) {
	case Child:
		return p.Height, p.Height > 0
	case Brick:
		return p.Height, p.Height > 0
	default:
		return 0, false
	}
}

// Title returns the display title of item.
func Title(item waterfall.Item) string {
	switch p := item.Payload.(type) {
	case Child:
		return p.Title
	case Brick:
		return p.Title
	default:
		return item.ID
	}
}

// Body returns the display body of item.
func Body(item waterfall.Item) string {
	switch p := item.Payload.(type) {
	case Child:
		return p.Body
	case Brick:
		return p.Body
	default:
		return ""
	}
}
