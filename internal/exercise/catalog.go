package exercise

import (
	_ "embed"
	"fmt"

	"github.com/aaronromeo/swolelog/internal/id"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind discriminates which metrics an exercise records.
type Kind string

const (
	Strength Kind = "strength" // sets, reps, weight
	Cardio   Kind = "cardio"   // duration (distance), speed, incline
)

func (k Kind) Valid() bool { return k == Strength || k == Cardio }

type Definition struct {
	Name        string `yaml:"name" json:"name"`
	Slug        string `yaml:"-" json:"slug"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	MuscleGroup string `yaml:"muscle_group" json:"muscleGroup"`
}

type Category struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`
}

// Catalog is the read-only exercise vocabulary and category list.
type Catalog struct {
	exercises  []Definition
	categories []Category
	byName     map[string]int
	byCategory map[string]int
}

type catalogFile struct {
	Exercises  []Definition `yaml:"exercises"`
	Categories []Category   `yaml:"categories"`
}

// Default is the catalog embedded in the binary.
var Default = MustParse(catalogYAML)

// Parse decodes a YAML catalog and checks it for duplicate names and unknown kinds.
func Parse(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	c := &Catalog{
		byName:     make(map[string]int, len(f.Exercises)),
		byCategory: make(map[string]int, len(f.Categories)),
	}
	for i, d := range f.Exercises {
		if d.Name == "" {
			return nil, fmt.Errorf("exercise %d: empty name", i)
		}
		if !d.Kind.Valid() {
			return nil, fmt.Errorf("exercise %q: unknown kind %q", d.Name, d.Kind)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("exercise %q: duplicate", d.Name)
		}
		d.Slug = id.Slug(d.Name)
		c.byName[d.Name] = len(c.exercises)
		c.exercises = append(c.exercises, d)
	}
	for _, cat := range f.Categories {
		if !cat.Kind.Valid() {
			return nil, fmt.Errorf("category %q: unknown kind %q", cat.Name, cat.Kind)
		}
		if _, dup := c.byCategory[cat.Name]; dup {
			return nil, fmt.Errorf("category %q: duplicate", cat.Name)
		}
		c.byCategory[cat.Name] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

func MustParse(raw []byte) *Catalog {
	c, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns exercise names in display order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.exercises))
	for i, d := range c.exercises {
		out[i] = d.Name
	}
	return out
}

func (c *Catalog) Exercises() []Definition {
	return append([]Definition(nil), c.exercises...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Lookup matches names exactly; "squat" is not "Squat".
func (c *Catalog) Lookup(name string) (Definition, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Definition{}, false
	}
	return c.exercises[i], true
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// KindOf returns the kind of a catalog exercise. Names outside the catalog are strength.
func (c *Catalog) KindOf(name string) Kind {
	if d, ok := c.Lookup(name); ok {
		return d.Kind
	}
	return Strength
}

func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.byCategory[name]
	return ok
}

// CategoryKind returns the kind implied by a freeform category. Unknown categories are strength.
func (c *Catalog) CategoryKind(name string) Kind {
	if i, ok := c.byCategory[name]; ok {
		return c.categories[i].Kind
	}
	return Strength
}
