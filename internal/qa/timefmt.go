package qa

import (
	"fmt"
	"time"
)

// Submissions persist their creation date as ISO-8601 text. Rows written by
// earlier builds may lack a zone offset, so parsing tolerates both forms.
const creationDateLayout = time.RFC3339

func formatCreationDate(t time.Time) string {
	return t.UTC().Format(creationDateLayout)
}

func parseCreationDate(s string) (time.Time, error) {
	if t, err := time.Parse(creationDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad creation date %q: %w", s, err)
	}
	return t, nil
}
