package id

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestSlug_Table(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Overhead Press (OHP)", "overhead-press-ohp"},
		{"Pull-ups", "pull-ups"},
		{"  -- Hammer   Curls ** ", "hammer-curls"},
		{"Squat", "squat"},
		{"", ""},
	}
	for _, tc := range cases {
		got := Slug(tc.in)
		if got != tc.want {
			t.Fatalf("Slug(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestSubmissionID_Table(t *testing.T) {
	cases := []struct {
		name    string
		date    string
		payload string
		prefix  string
	}{
		{"dated", "2024-01-05", `{"date":"2024-01-05"}`, "2024-01-05"},
		{"undated", "", `{}`, "undated"},
	}
	for _, tc := range cases {
		expected := fmt.Sprintf("%s-%08x", tc.prefix, uint32(xxhash.Sum64([]byte(tc.payload))))

		got1 := SubmissionID(tc.date, []byte(tc.payload))
		got2 := SubmissionID(tc.date, []byte(tc.payload))

		if got1 != expected {
			t.Fatalf("%s: SubmissionID(...) = %q; want %q", tc.name, got1, expected)
		}
		if got2 != expected {
			t.Fatalf("%s: non-deterministic: second call %q; want %q", tc.name, got2, expected)
		}
	}
}

func TestDraftID(t *testing.T) {
	a, b := NewDraftID(), NewDraftID()
	if a == b {
		t.Fatalf("expected distinct draft ids, got %q twice", a)
	}
	if !ValidDraftID(a) {
		t.Fatalf("generated id %q not valid", a)
	}
	if ValidDraftID("not-an-id") {
		t.Fatal("expected garbage id to be invalid")
	}
}
