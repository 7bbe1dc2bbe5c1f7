package domain

// VisualTag selects the accent used when a step is highlighted.
type VisualTag string

const (
	TagPrimary   VisualTag = "primary"
	TagSecondary VisualTag = "secondary"
	TagAccent    VisualTag = "accent"
)

// Valid reports whether t is one of the known tags. An empty tag is valid and means primary.
func (t VisualTag) Valid() bool {
	switch t {
	case "", TagPrimary, TagSecondary, TagAccent:
		return true
	}
	return false
}

// Step is one labeled phase of the preloader animation.
type Step struct {
	Ordinal int       `json:"ordinal" yaml:"ordinal" mapstructure:"ordinal"`
	Label   string    `json:"label" yaml:"label" mapstructure:"label"`
	Tag     VisualTag `json:"tag" yaml:"tag" mapstructure:"tag"`
}

// DefaultSteps returns the four discovery phases shown before the form.
func DefaultSteps() []Step {
	return []Step{
		{Ordinal: 0, Label: "Discovering destinations", Tag: TagPrimary},
		{Ordinal: 1, Label: "Finding perfect locations", Tag: TagSecondary},
		{Ordinal: 2, Label: "Planning your journey", Tag: TagAccent},
		{Ordinal: 3, Label: "Creating memories", Tag: TagPrimary},
	}
}

// NormalizeSteps returns a copy of steps with ordinals matching their position
// and a primary tag where none was given.
func NormalizeSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Ordinal = i
		if s.Tag == "" {
			s.Tag = TagPrimary
		}
		out[i] = s
	}
	return out
}
