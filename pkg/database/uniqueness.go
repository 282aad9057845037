package database

import (
	"regexp"
)

// uniqueViolationRE matches the message sqlite produces when a UNIQUE index
// rejects a write, e.g. "UNIQUE constraint failed: books.isbn". Both the
// mattn and modernc drivers produce this text.
var uniqueViolationRE = regexp.MustCompile(`UNIQUE constraint failed: (\w+)\.(\w+)`)

// UniqueViolation inspects a store error and, when it is a uniqueness
// conflict, reports the table and first column of the violated constraint.
// The store is the source of truth for uniqueness: callers insert and map
// the conflict afterwards instead of pre-checking, which would race.
func UniqueViolation(err error) (table, column string, ok bool) {
	if err == nil {
		return "", "", false
	}
	m := uniqueViolationRE.FindStringSubmatch(err.Error())
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
