// Package store defines the persistence ports of the tracker and the payload
// codec shared by every backend.
package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"arbeitszeit/internal/core"
)

// Storage keys shared by every backend.
const (
	DatasetKey = "arbeitszeitData"
	CursorKey  = "currentMonthIndex"
)

// EncodeDataset serializes the dataset payload. Encoding is deterministic,
// so encode-decode-encode yields identical bytes.
func EncodeDataset(ds *core.Dataset) ([]byte, error) {
	b, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return b, nil
}

// DecodeDataset parses a stored payload. A malformed payload is an error for
// the backend to downgrade to "absent".
func DecodeDataset(b []byte) (*core.Dataset, error) {
	ds := core.NewDataset()
	if err := json.Unmarshal(b, ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if ds.Months == nil {
		ds.Months = make(map[int]core.MonthData)
	}
	return ds, nil
}

// ParseCursor parses the stored cursor text, falling back to month 0 on
// anything absent, unparseable, or out of range.
func ParseCursor(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !core.ValidMonth(v) {
		return 0
	}
	return v
}

// FormatCursor renders the cursor as the decimal text stored under CursorKey.
func FormatCursor(monthIndex int) string {
	return strconv.Itoa(monthIndex)
}
