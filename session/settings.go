package session

// Tone controls the assistant's register.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
)

// Depth controls how long answers should be.
type Depth string

const (
	DepthConcise  Depth = "concise"
	DepthBalanced Depth = "balanced"
	DepthDetailed Depth = "detailed"
)

// CitationMode controls whether the assistant cites source passages.
type CitationMode string

const (
	CitationAuto   CitationMode = "auto"
	CitationAlways CitationMode = "always"
	CitationNever  CitationMode = "never"
)

// Settings holds the user-configurable behavior knobs. A settings change
// takes effect on the next send only; an in-flight request keeps the
// settings it was built with.
type Settings struct {
	Tone           Tone
	Depth          Depth
	CitationMode   CitationMode
	ExtractTables  bool
	DescribeImages bool
	SystemPrompt   string
}

// DefaultSettings returns the startup defaults.
func DefaultSettings() Settings {
	return Settings{
		Tone:           ToneNeutral,
		Depth:          DepthBalanced,
		CitationMode:   CitationAuto,
		ExtractTables:  true,
		DescribeImages: true,
		SystemPrompt:   "You are Elroy, an assistant that helps users understand the documents they upload.",
	}
}

// Tones lists the valid tone values in display order.
func Tones() []Tone {
	return []Tone{ToneNeutral, ToneFriendly, ToneFormal}
}

// Depths lists the valid depth values in display order.
func Depths() []Depth {
	return []Depth{DepthConcise, DepthBalanced, DepthDetailed}
}

// CitationModes lists the valid citation modes in display order.
func CitationModes() []CitationMode {
	return []CitationMode{CitationAuto, CitationAlways, CitationNever}
}
