// Package period derives "Month YYYY" period labels used in content plan
// document names. Labels are emitted in Indonesian by default because that is
// the naming convention of the planning documents; inputs are accepted in
// either Indonesian or English.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Language selects the month-name table for output labels.
type Language string

const (
	Indonesian Language = "indonesian"
	English    Language = "english"
)

var indonesianMonths = [13]string{"",
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var englishMonths = [13]string{"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func monthNames(lang Language) [13]string {
	if lang == English {
		return englishMonths
	}
	return indonesianMonths
}

// Parse interprets a "Month YYYY" label in Indonesian or English.
func Parse(input string) (time.Month, int, error) {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) != 2 {
		return 0, 0, eris.Errorf("period: invalid label %q, want \"Month YYYY\"", input)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, eris.Errorf("period: invalid year in %q", input)
	}

	name := parts[0]
	for m := 1; m <= 12; m++ {
		if strings.EqualFold(indonesianMonths[m], name) || strings.EqualFold(englishMonths[m], name) {
			return time.Month(m), year, nil
		}
	}
	return 0, 0, eris.Errorf("period: unknown month name %q", name)
}

// Label formats a month/year pair in the given language.
func Label(month time.Month, year int, lang Language) string {
	return fmt.Sprintf("%s %d", monthNames(lang)[month], year)
}

// Offset returns the month/year at offsetMonths from now, normalizing
// overflow across year boundaries.
func Offset(now time.Time, offsetMonths int) (time.Month, int) {
	y := now.Year()
	m := int(now.Month()) + offsetMonths
	for m > 12 {
		m -= 12
		y++
	}
	for m < 1 {
		m += 12
		y--
	}
	return time.Month(m), y
}

// Resolve produces the canonical search label: the explicit input label
// re-rendered in lang when given, otherwise the month at offsetMonths from
// now. An unparseable explicit input is an error; the caller treats that as
// run-fatal because every downstream document name depends on it.
func Resolve(input string, offsetMonths int, now time.Time, lang Language) (string, error) {
	if strings.TrimSpace(input) != "" {
		month, year, err := Parse(input)
		if err != nil {
			return "", err
		}
		return Label(month, year, lang), nil
	}
	month, year := Offset(now, offsetMonths)
	return Label(month, year, lang), nil
}
