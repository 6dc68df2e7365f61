package youtube

import "strings"

// ParseDuration converts an ISO 8601 duration such as PT1H2M3S or P1DT5M to
// whole seconds. Malformed input yields 0.
func ParseDuration(value string) int {
	value = strings.ToUpper(strings.TrimSpace(value))
	if !strings.HasPrefix(value, "P") {
		return 0
	}

	total := 0
	number := 0
	hasDigits := false
	inTime := false
	for _, r := range value[1:] {
		switch {
		case r >= '0' && r <= '9':
			number = number*10 + int(r-'0')
			hasDigits = true
			continue
		case r == 'T':
			if hasDigits {
				return 0
			}
			inTime = true
			continue
		}

		if !hasDigits {
			return 0
		}
		switch {
		case r == 'W' && !inTime:
			total += number * 7 * 86400
		case r == 'D' && !inTime:
			total += number * 86400
		case r == 'H' && inTime:
			total += number * 3600
		case r == 'M' && inTime:
			total += number * 60
		case r == 'S' && inTime:
			total += number
		default:
			return 0
		}
		number = 0
		hasDigits = false
	}
	if hasDigits {
		return 0
	}
	return total
}
