package ledger

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var (
	// installmentPhrase matches concepts like "CUOTA SEMANAL 7 DE 52" and
	// captures the installment position before "DE".
	installmentPhrase = regexp.MustCompile(`(?i)CUOTA.*?(\d+)\s+DE`)

	// anyDigits is the fallback: the first run of digits anywhere in the text.
	anyDigits = regexp.MustCompile(`\d+`)
)

// InstallmentNumber derives an installment number from a charge's free-text
// concept. It prefers the "CUOTA ... <n> DE <total>" phrase, falls back to the
// first digit run, and reports false when the text yields nothing so the
// caller can fall back to the charge ID.
func InstallmentNumber(concept string) (int, bool) {
	if concept == "" {
		return 0, false
	}
	if m := installmentPhrase.FindStringSubmatch(concept); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := anyDigits.FindString(concept); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

// ParseInstallmentSet parses the payment field naming the installments a
// payment may settle. The upstream sends a single number, a comma-separated
// string, or nothing; unparseable tokens are dropped silently and an absent
// field yields an empty set (the payment then settles nothing directly).
func ParseInstallmentSet(v any) []int {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		return []int{int(value)}
	case int:
		return []int{value}
	case int64:
		return []int{int(value)}
	case json.Number:
		i, err := value.Int64()
		if err != nil {
			f, ferr := value.Float64()
			if ferr != nil {
				return nil
			}
			return []int{int(f)}
		}
		return []int{int(i)}
	case string:
		var out []int
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if n, err := strconv.Atoi(part); err == nil {
				out = append(out, n)
			}
		}
		return out
	default:
		return nil
	}
}
