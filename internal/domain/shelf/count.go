package shelf

import (
	"regexp"
	"strconv"
	"strings"
)

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+)?(\.\d*)?$`)

// ParseCount interprets the free-form count field of a submission.
//
// Whitespace is trimmed. Empty or non-numeric text yields nil: the count is
// absent, never zero and never an error. A decimal literal yields its integer
// part, so ".5" is 0. Only plain base-10 digits count as numeric: exponent
// and hex forms such as "1e3" or "0x1A" are absent. Sign is preserved so
// callers can reject negative counts.
func ParseCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	m := decimalLiteral.FindStringSubmatch(raw)
	if m == nil || (m[1] == "" && len(m[2]) <= 1) {
		return nil
	}

	intPart := m[1]
	if intPart == "" {
		intPart = "0"
	}
	if strings.HasPrefix(raw, "-") {
		intPart = "-" + intPart
	}

	n, err := strconv.Atoi(intPart)
	if err != nil {
		return nil
	}
	return &n
}
