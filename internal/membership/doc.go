// Package membership defines the privileged operating-system primitives
// kcjoin drives: renaming the host and joining or leaving a directory domain.
// The Windows implementation calls NetAPI32 and kernel32 directly; other
// platforms only get the interface, which lets the rest of the program be
// exercised against fakes.
package membership
