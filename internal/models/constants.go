package models

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// DefaultMapColors are assigned round-robin to vehicles at affiliation for
// the read-only map collaborator.
var DefaultMapColors = []string{
	"orange", "purple", "red", "darkgreen",
	"gray", "blue", "pink", "brown",
}
