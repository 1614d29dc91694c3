package qa

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeIDList joins ids into the comma-separated form stored in the
// denormalized answers column. An empty list encodes as "".
func EncodeIDList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeIDList parses a comma-separated id list, preserving order and
// ignoring empty tokens. "" decodes as an empty list.
func DecodeIDList(csv string) ([]int64, error) {
	var ids []int64
	for _, token := range strings.Split(csv, ",") {
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q in list: %w", token, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
