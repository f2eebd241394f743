package mode

// Mode is the keyword combination semantics.
type Mode string

// Keyword combination constants.
const (
	// And requires every query keyword to match.
	And Mode = "and"
	// Or requires at least one query keyword to match.
	Or Mode = "or"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == And || m == Or
}
