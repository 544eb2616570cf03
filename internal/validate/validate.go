// Package validate holds the pure form validation rules for signup and
// login input. No I/O, no side effects; every check returns a fresh Result.
package validate

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`\d`)
)

// Result is a pass/fail outcome with a human-readable reason on failure.
type Result struct {
	OK     bool
	Reason string
}

func valid() Result {
	return Result{OK: true}
}

func invalid(reason string) Result {
	return Result{Reason: reason}
}

func Email(email string) Result {
	if email == "" {
		return invalid("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return invalid("Please enter a valid email address")
	}
	if len(email) > 255 {
		return invalid("Email is too long")
	}
	return valid()
}

func Password(password string) Result {
	if password == "" {
		return invalid("Password is required")
	}
	if len(password) < 8 {
		return invalid("Password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return invalid("Password is too long")
	}
	if !lowerPattern.MatchString(password) {
		return invalid("Password must contain at least one lowercase letter")
	}
	if !upperPattern.MatchString(password) {
		return invalid("Password must contain at least one uppercase letter")
	}
	if !digitPattern.MatchString(password) {
		return invalid("Password must contain at least one number")
	}
	return valid()
}

// Name accepts an empty value; the display name is optional.
func Name(name string) Result {
	if name == "" {
		return valid()
	}
	if len(name) < 2 {
		return invalid("Name must be at least 2 characters long")
	}
	if len(name) > 100 {
		return invalid("Name is too long")
	}
	if !namePattern.MatchString(name) {
		return invalid("Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return valid()
}

// SignupForm short-circuits on the first failing field.
func SignupForm(email string, password string, name string) Result {
	if r := Email(email); !r.OK {
		return r
	}
	if r := Password(password); !r.OK {
		return r
	}
	if r := Name(name); !r.OK {
		return r
	}
	return valid()
}

// LoginForm checks input shape only; password strength rules do not apply
// to existing credentials.
func LoginForm(email string, password string) Result {
	if email == "" {
		return invalid("Email is required")
	}
	if password == "" {
		return invalid("Password is required")
	}
	return Email(email)
}
