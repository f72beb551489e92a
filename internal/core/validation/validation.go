// Package validation holds the form field checks shared by every portal page.
// Each check returns "" for a valid value or the message to show the user.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	minPasswordLen = 8
	minNameLen     = 3
	maxNameLen     = 50
	specialChars   = "!@#$%^&*()"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	fullNamePattern = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)+$`)
)

// Password checks strength. Only the first failing rule is reported.
func Password(pw string) string {
	switch {
	case pw == "":
		return "Password is required."
	case utf8.RuneCountInString(pw) < minPasswordLen:
		return "Password must be at least 8 characters."
	case !strings.ContainsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		return "Password must contain an uppercase letter."
	case !strings.ContainsAny(pw, "abcdefghijklmnopqrstuvwxyz"):
		return "Password must contain a lowercase letter."
	case !strings.ContainsAny(pw, "0123456789"):
		return "Password must contain a number."
	case !strings.ContainsAny(pw, specialChars):
		return "Password must contain a special character."
	}
	return ""
}

func Email(email string) string {
	if email == "" {
		return "Email is required."
	}
	if !emailPattern.MatchString(email) {
		return "Enter a valid email address."
	}
	return ""
}

// FullName expects at least two alphabetic words separated by single spaces.
func FullName(name string) string {
	if name == "" {
		return "Full name is required."
	}
	if !fullNamePattern.MatchString(name) {
		return "Enter a valid full name (first and last)."
	}
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return "Full name must be between 3 and 50 characters."
	}
	return ""
}

// SignupRole accepts only the roles that may self-register.
func SignupRole(role string) string {
	if role == "" {
		return "Please select a role."
	}
	if !domain.Role(role).SelfRegistrable() {
		return "Select a valid role."
	}
	return ""
}

// MsgPasswordMismatch is reported when the confirmation differs from the password.
const MsgPasswordMismatch = "Passwords do not match."

func ConfirmPassword(pw, confirm string) string {
	if pw != confirm {
		return MsgPasswordMismatch
	}
	return ""
}
