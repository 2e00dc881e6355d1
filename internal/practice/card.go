// Package practice implements the flashcard practice session: the card
// queue, swipe gesture classification, the per-card countdown, scoring and
// the controller that ties them into the setup/active/finished lifecycle.
package practice

// Card is a single study item. Cards are read-only once loaded.
type Card struct {
	ID         string
	Term       string
	Definition string
}

// Face selects which side of a card is displayed.
type Face int

const (
	FaceTerm Face = iota
	FaceDefinition
)

// Other returns the opposite face.
func (f Face) Other() Face {
	if f == FaceTerm {
		return FaceDefinition
	}
	return FaceTerm
}

func (f Face) String() string {
	if f == FaceDefinition {
		return "definition"
	}
	return "term"
}

// ParseFace parses "term" or "definition". Anything else yields FaceTerm.
func ParseFace(s string) Face {
	if s == "definition" {
		return FaceDefinition
	}
	return FaceTerm
}

// Text returns the text shown for the given face.
func (c Card) Text(f Face) string {
	if f == FaceDefinition {
		return c.Definition
	}
	return c.Term
}
