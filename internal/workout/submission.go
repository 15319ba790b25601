package workout

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aaronromeo/swolelog/internal/exercise"
	"github.com/atombender/go-jsonschema/pkg/types"
)

const unnamedExercise = "Unnamed Exercise"

// Problem is one reason a draft cannot be submitted. Row is -1 for form-level problems.
type Problem struct {
	Row     int    `json:"row"`
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.Row < 0 {
		return fmt.Sprintf("%s: %s", p.Field, p.Message)
	}
	return fmt.Sprintf("exercise %d %s: %s", p.Row+1, p.Field, p.Message)
}

// ValidationError aborts a submission before anything is sent.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid workout: " + strings.Join(parts, "; ")
}

type Strength struct {
	Sets   *int
	Reps   *int
	Weight *float64
}

// Cardio metrics. Duration is the distance covered, in miles.
type Cardio struct {
	Duration *float64
	Speed    *float64
	Incline  *float64
}

// Exercise is a submitted exercise. Exactly one of Strength or Cardio is set, matching Kind.
type Exercise struct {
	Name     string
	Category string
	Kind     exercise.Kind
	Strength *Strength
	Cardio   *Cardio
}

type wireExercise struct {
	Name     string   `json:"name"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	Duration *float64 `json:"duration"`
	Speed    *float64 `json:"speed"`
	Incline  *float64 `json:"incline"`
	Exercise string   `json:"exercise"`
	Category string   `json:"category,omitempty"`
}

// MarshalJSON flattens the exercise; metrics of the other kind are written as null.
func (e Exercise) MarshalJSON() ([]byte, error) {
	w := wireExercise{Name: e.Name, Exercise: e.Name, Category: e.Category}
	if w.Exercise == "" {
		w.Exercise = unnamedExercise
	}
	switch {
	case e.Kind == exercise.Cardio && e.Cardio != nil:
		w.Duration, w.Speed, w.Incline = e.Cardio.Duration, e.Cardio.Speed, e.Cardio.Incline
	case e.Kind == exercise.Strength && e.Strength != nil:
		w.Sets, w.Reps, w.Weight = e.Strength.Sets, e.Strength.Reps, e.Strength.Weight
	}
	return json.Marshal(w)
}

// Submission is the payload sent to the workouts API.
type Submission struct {
	Date      time.Time
	Exercises []Exercise
}

type wireSubmission struct {
	Date      *types.SerializableDate `json:"date"`
	Exercises []Exercise              `json:"exercises"`
}

func (s Submission) MarshalJSON() ([]byte, error) {
	exs := s.Exercises
	if exs == nil {
		exs = []Exercise{}
	}
	return json.Marshal(wireSubmission{
		Date:      &types.SerializableDate{Time: s.Date},
		Exercises: exs,
	})
}

// Build validates d against v and reshapes every row into its kind-specific exercise.
func Build(d Draft, v Variant) (Submission, error) {
	var problems []Problem
	date, err := time.Parse(DateLayout, d.Date)
	if err != nil {
		problems = append(problems, Problem{Row: -1, Field: "date", Message: "a valid date is required"})
	}
	if len(d.Exercises) == 0 {
		problems = append(problems, Problem{Row: -1, Field: "exercises", Message: "add at least one exercise"})
	}
	problems = append(problems, v.Check(d)...)
	if len(problems) > 0 {
		return Submission{}, &ValidationError{Problems: problems}
	}

	s := Submission{Date: date, Exercises: make([]Exercise, 0, len(d.Exercises))}
	for _, r := range d.Exercises {
		ex := Exercise{Name: r.Name, Kind: v.KindOf(r)}
		if v.Categorized() {
			ex.Category = r.Category
		}
		if ex.Kind == exercise.Cardio {
			ex.Cardio = &Cardio{Duration: r.Duration, Speed: r.Speed, Incline: r.Incline}
		} else {
			ex.Strength = &Strength{Sets: r.Sets, Reps: r.Reps, Weight: r.Weight}
		}
		s.Exercises = append(s.Exercises, ex)
	}
	return s, nil
}
