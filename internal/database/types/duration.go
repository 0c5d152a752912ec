package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// ParseDuration parses durations such as "30m", "1h", "7d" or "1d12h".
// Values that overflow or are not positive are rejected.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrValidation)
	}

	total, err := str2duration.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed duration %q: %w", ErrValidation, value, err)
	}

	if total <= 0 {
		return 0, fmt.Errorf("%w: duration %q must be positive", ErrValidation, value)
	}

	return total, nil
}
