package workout

import (
	"fmt"

	"github.com/aaronromeo/swolelog/internal/exercise"
)

// Variant decides which exercise names a form accepts and what kind each row is.
type Variant interface {
	Name() string
	// Categorized reports whether rows carry a category selector.
	Categorized() bool
	Check(d Draft) []Problem
	KindOf(r Row) exercise.Kind
}

func NewVariant(name string, catalog *exercise.Catalog) (Variant, error) {
	switch name {
	case "catalog":
		return CatalogVariant{Catalog: catalog}, nil
	case "freeform":
		return FreeformVariant{Catalog: catalog}, nil
	}
	return nil, fmt.Errorf("unknown form variant %q", name)
}

// CatalogVariant only accepts names from the fixed vocabulary.
type CatalogVariant struct {
	Catalog *exercise.Catalog
}

func (CatalogVariant) Name() string      { return "catalog" }
func (CatalogVariant) Categorized() bool { return false }

func (v CatalogVariant) Check(d Draft) []Problem {
	var out []Problem
	for i, r := range d.Exercises {
		if !v.Catalog.Contains(r.Name) {
			out = append(out, Problem{Row: i, Field: FieldName, Message: "select a valid exercise name from the list"})
		}
	}
	return out
}

func (v CatalogVariant) KindOf(r Row) exercise.Kind {
	return v.Catalog.KindOf(r.Name)
}

// FreeformVariant accepts any non-empty name; the category picks the kind.
type FreeformVariant struct {
	Catalog *exercise.Catalog
}

func (FreeformVariant) Name() string      { return "freeform" }
func (FreeformVariant) Categorized() bool { return true }

func (v FreeformVariant) Check(d Draft) []Problem {
	var out []Problem
	for i, r := range d.Exercises {
		if r.Name == "" {
			out = append(out, Problem{Row: i, Field: FieldName, Message: "exercise name is required"})
		}
		if !v.Catalog.HasCategory(r.Category) {
			out = append(out, Problem{Row: i, Field: FieldCategory, Message: "select a category"})
		}
	}
	return out
}

func (v FreeformVariant) KindOf(r Row) exercise.Kind {
	return v.Catalog.CategoryKind(r.Category)
}
