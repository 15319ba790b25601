package web

import (
	"bytes"
	"testing"

	"github.com/aaronromeo/swolelog/internal/exercise"
	"github.com/aaronromeo/swolelog/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, page FormPage) string {
	t.Helper()
	tmpls, err := Load()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpls.ExecuteTemplate(&buf, "form.html", page))
	return buf.String()
}

func TestFormPage_Catalog(t *testing.T) {
	v, err := workout.NewVariant("catalog", exercise.Default)
	require.NoError(t, err)

	d := workout.NewDraft()
	d.AddExercise()
	require.NoError(t, d.SetDate("2024-01-05"))
	require.NoError(t, d.Update(0, workout.FieldName, "Squat"))
	require.NoError(t, d.Update(0, workout.FieldWeight, ""))
	require.NoError(t, d.Update(1, workout.FieldName, "Treadmill"))

	html := render(t, NewFormPage(d, v, exercise.Default))

	assert.Contains(t, html, `name="date" value="2024-01-05"`)
	assert.Contains(t, html, `<option value="Squat" data-slug="squat" selected>Squat</option>`)
	assert.Contains(t, html, `name="sets-0" value="0"`)
	assert.Contains(t, html, `name="weight-0" value=""`)
	assert.Contains(t, html, `name="duration-1"`)
	assert.Contains(t, html, "Distance (miles)")
	assert.NotContains(t, html, `name="sets-1"`)
	assert.NotContains(t, html, `name="category-0"`)
	assert.Contains(t, html, `value="remove-1"`)
	// row count comes from the stored draft, not the post
	assert.NotContains(t, html, `name="rows"`)
}

func TestFormPage_FreeformAndFlash(t *testing.T) {
	v, err := workout.NewVariant("freeform", exercise.Default)
	require.NoError(t, err)

	page := NewFormPage(workout.NewDraft(), v, exercise.Default)
	page.Flash = "Please select valid exercise names from the list"
	page.FlashKind = FlashError
	page.Problems = []string{"exercise 1: <name> is required"}

	html := render(t, page)

	assert.Contains(t, html, `<input type="text" id="name-0" name="name-0" value=""`)
	assert.Contains(t, html, `name="category-0"`)
	assert.Contains(t, html, `<option value="Cardio">Cardio</option>`)
	assert.Contains(t, html, `class="flash error"`)
	assert.Contains(t, html, "exercise 1: &lt;name&gt; is required")
	// a single row cannot be removed
	assert.NotContains(t, html, `value="remove-0"`)
}

func TestTemplates_UnknownPage(t *testing.T) {
	tmpls, err := Load()
	require.NoError(t, err)
	assert.Error(t, tmpls.ExecuteTemplate(&bytes.Buffer{}, "missing.html", nil))
}
