// Package sanitizer normalizes user supplied text before validation and storage.
//
// All functions are idempotent and never fail: invalid input collapses to an
// empty string (or is dropped from a slice) and is left for the validator to
// reject.
//
// Normalization includes:
//   - Phone numbers: E.164 via libphonenumber, Indian numbers assumed when no prefix is given
//   - Emails: trimmed and lowercased
//   - Free text: whitespace collapsed, leading/trailing spaces trimmed
//   - Slot labels: "9:00" becomes "09:00"
//   - Slices: duplicates and empty values removed after normalization
package sanitizer
