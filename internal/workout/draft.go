package workout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const DateLayout = time.DateOnly

var (
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidDate   = errors.New("invalid date, use YYYY-MM-DD")
	ErrUnknownField  = errors.New("unknown field")
	ErrRowOutOfRange = errors.New("exercise row out of range")
	ErrLastRow       = errors.New("cannot remove the last exercise row")
)

// Field names a single editable input of an exercise row.
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldSets     Field = "sets"
	FieldReps     Field = "reps"
	FieldWeight   Field = "weight"
	FieldDuration Field = "duration"
	FieldSpeed    Field = "speed"
	FieldIncline  Field = "incline"
)

// Fields lists every row field in form order.
var Fields = []Field{FieldName, FieldCategory, FieldSets, FieldReps, FieldWeight, FieldDuration, FieldSpeed, FieldIncline}

func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Row is one exercise as it is being edited. Nil metrics are cleared inputs.
type Row struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Sets     *int     `json:"sets"`
	Reps     *int     `json:"reps"`
	Weight   *float64 `json:"weight"`
	Duration *float64 `json:"duration"`
	Speed    *float64 `json:"speed"`
	Incline  *float64 `json:"incline"`
}

// NewRow returns a row with every metric set to zero.
func NewRow() Row {
	return Row{
		Sets:     intp(0),
		Reps:     intp(0),
		Weight:   floatp(0),
		Duration: floatp(0),
		Speed:    floatp(0),
		Incline:  floatp(0),
	}
}

// Input returns the text shown in the field's input; nil metrics render empty.
func (r Row) Input(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldCategory:
		return r.Category
	case FieldSets:
		return formatInt(r.Sets)
	case FieldReps:
		return formatInt(r.Reps)
	case FieldWeight:
		return formatFloat(r.Weight)
	case FieldDuration:
		return formatFloat(r.Duration)
	case FieldSpeed:
		return formatFloat(r.Speed)
	case FieldIncline:
		return formatFloat(r.Incline)
	}
	return ""
}

// set parses raw for field f and stores it. Empty input clears the field.
// The row is left untouched when parsing fails.
func (r *Row) set(f Field, raw string) error {
	raw = strings.TrimSpace(raw)
	switch f {
	case FieldName:
		r.Name = raw
		return nil
	case FieldCategory:
		r.Category = raw
		return nil
	case FieldSets, FieldReps:
		v, err := parseCount(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		if f == FieldSets {
			r.Sets = v
		} else {
			r.Reps = v
		}
		return nil
	case FieldWeight, FieldDuration, FieldSpeed, FieldIncline:
		// incline may be negative on a decline
		v, err := parseAmount(raw, f == FieldIncline)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		switch f {
		case FieldWeight:
			r.Weight = v
		case FieldDuration:
			r.Duration = v
		case FieldSpeed:
			r.Speed = v
		default:
			r.Incline = v
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// Draft is the editable state of one workout form.
type Draft struct {
	Date      string `json:"date"`
	Exercises []Row  `json:"exercises"`
}

// NewDraft returns an empty form: no date and a single zero-valued row.
func NewDraft() Draft {
	return Draft{Exercises: []Row{NewRow()}}
}

// Reset returns the draft to the NewDraft state.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// AddExercise appends a zero-valued row.
func (d *Draft) AddExercise() {
	d.Exercises = append(d.Exercises, NewRow())
}

func (d *Draft) RemoveExercise(index int) error {
	if index < 0 || index >= len(d.Exercises) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	if len(d.Exercises) == 1 {
		return ErrLastRow
	}
	d.Exercises = append(d.Exercises[:index], d.Exercises[index+1:]...)
	return nil
}

// SetDate stores raw as the workout date. Empty clears it.
func (d *Draft) SetDate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if _, err := time.Parse(DateLayout, raw); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
	}
	d.Date = raw
	return nil
}

// Update replaces one field of the row at index.
func (d *Draft) Update(index int, f Field, raw string) error {
	if index < 0 || index >= len(d.Exercises) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	return d.Exercises[index].set(f, raw)
}

func parseCount(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return &n, nil
}

func parseAmount(raw string, allowNegative bool) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || (!allowNegative && v < 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return &v, nil
}

func formatInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
