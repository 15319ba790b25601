package id

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts an exercise name to a lowercase kebab slug usable in element IDs,
// e.g. "Overhead Press (OHP)" -> "overhead-press-ohp".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SubmissionID builds YYYY-MM-DD-<hex> where hex is the xxhash of the serialized payload.
// Identical payloads for the same day share an ID, which makes repeated submits easy to spot in logs.
func SubmissionID(dateISO string, payload []byte) string {
	if dateISO == "" {
		dateISO = "undated"
	}
	return fmt.Sprintf("%s-%08x", dateISO, uint32(xxhash.Sum64(payload)))
}

// NewDraftID returns a random draft identifier.
func NewDraftID() string {
	return uuid.NewString()
}

// ValidDraftID reports whether s looks like an ID produced by NewDraftID.
func ValidDraftID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
