package workout

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/submission-v1.json
var SubmissionSchema string

var submissionSchemaLoader = gojsonschema.NewStringLoader(SubmissionSchema)

// ValidateSubmissionJSON checks a serialized submission against the v1 schema.
func ValidateSubmissionJSON(b []byte) error {
	result, err := gojsonschema.Validate(submissionSchemaLoader, gojsonschema.NewBytesLoader(b))
	if err != nil {
		return err
	}
	if !result.Valid() {
		return fmt.Errorf("submission json invalid: %s", collect(result.Errors()))
	}
	return nil
}

func collect(errs []gojsonschema.ResultError) string {
	var buf bytes.Buffer
	for _, e := range errs {
		buf.WriteString(e.String())
		buf.WriteByte(';')
	}
	return buf.String()
}
