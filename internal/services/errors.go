package services

import "strings"

// isUniqueViolation detects unique-constraint failures across the drivers in
// use (postgres "duplicate key value violates unique constraint", sqlite
// "UNIQUE constraint failed"). A violation on insert means we lost a
// check-then-act race and should reread instead.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "already exists")
}
