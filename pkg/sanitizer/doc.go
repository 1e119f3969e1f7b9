// Package sanitizer normalizes booking input before it is validated and stored.
//
// Every function is idempotent. Nothing here rejects input: a value that cannot be
// normalized is returned trimmed, and validation decides whether it is acceptable.
package sanitizer
