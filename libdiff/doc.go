// Package libdiff computes structural differences between values.
//
// A diff is itself a value, or nil when there is no difference:
//
//   - a replaced value is {"-": from, "+": to}; an added one has only "+"
//     and a removed one only "-"
//   - a dictionary diff maps each changed key to the diff of its value, and
//     a key which only changed position to {"moved": index}
//   - an array diff maps "[i]" to the diff of element i
//   - a small string change is {"diff": patch} in diff-match-patch text form
//
// # Related Packages
//
//   - github.com/uyjulian/psbfile/value - the values compared
package libdiff
