package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	idRe       = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// AllCategories is the sentinel category meaning "no category filter".
const AllCategories = "All"

func ValidateID(id string) bool {
	return idRe.MatchString(id)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func ValidateUsername(username string) bool {
	username = NormalizeUsername(username)
	return usernameRe.MatchString(username)
}

// NormalizeQuery trims and lower-cases a free text search term.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// NormalizeCategory maps blank and "All" to the empty filter.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, AllCategories) {
		return ""
	}
	return category
}

// TrimAndLimit trims s and cuts it to at most max characters.
func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max > 0 && utf8.RuneCountInString(s) > max {
		return string([]rune(s)[:max])
	}
	return s
}

// Length counts characters rather than bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
