package domain

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	firstUserCode = 1000
	userCodeStep  = 5
	maxCode       = 9999
)

// User models an account that can log in, either as an admin (by email) or
// as a client (by school code + user code).
type User struct {
	ID           int64     `json:"id"`
	Code         string    `json:"userCode"`
	Role         string    `json:"role"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Schools      []string  `json:"schools"`
	CreatedBy    *int64    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsCode reports whether s is a 4-digit code between 1000 and 9999.
func IsCode(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= firstUserCode && n <= maxCode
}

// NextUserCode returns the code that follows last. An empty last yields the
// first code.
func NextUserCode(last string) (string, error) {
	if last == "" {
		return strconv.Itoa(firstUserCode), nil
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return "", fmt.Errorf("parse user code %q: %w", last, err)
	}
	next := n + userCodeStep
	if next < firstUserCode {
		next = firstUserCode
	}
	if next > maxCode {
		return "", ErrUserCodeExhausted
	}
	return strconv.Itoa(next), nil
}

// DefaultPassword is the initial password handed out for a new account.
func DefaultPassword(code string) string {
	return "P" + code
}

// DiffSchools compares the current school links of a user against the
// desired list and returns the codes to link and to unlink. Codes present
// in both are left out of either result.
func DiffSchools(current, desired []string) (add, remove []string) {
	for _, code := range desired {
		if !slices.Contains(current, code) && !slices.Contains(add, code) {
			add = append(add, code)
		}
	}
	for _, code := range current {
		if !slices.Contains(desired, code) {
			remove = append(remove, code)
		}
	}
	return add, remove
}
