package validation

import (
	"regexp"
	"sort"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

const MinPasswordLength = 6

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// First returns the violation for the alphabetically first field, so the
// reported message is the same across runs when several fields fail.
func (v Violations) First() string {
	if len(v) == 0 {
		return ""
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields[0] + ": " + v[fields[0]]
}

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "champ obligatoire"
	}
}

func Email(field, value string, v Violations) {
	if value != "" && !emailRe.MatchString(value) {
		v[field] = "format email invalide"
	}
}

func Phone(field, value string, v Violations) {
	if value != "" && !phoneRe.MatchString(value) {
		v[field] = "format téléphone invalide"
	}
}

func Password(field, value string, v Violations) {
	if len(value) < MinPasswordLength {
		v[field] = "au moins 6 caractères"
	}
}

func PositiveInt(field string, value int, v Violations) {
	if value <= 0 {
		v[field] = "doit être positif"
	}
}

func IsEmail(value string) bool { return emailRe.MatchString(value) }
func IsPhone(value string) bool { return phoneRe.MatchString(value) }
