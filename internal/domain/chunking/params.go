package chunking

// Default parameter values
const (
	// DefaultTargetChunks is the number of cards a text is split into when it
	// has at least that many words.
	DefaultTargetChunks = 5

	// DefaultSummaryPrefix precedes the 1-based card position in every summary.
	DefaultSummaryPrefix = "Key point "

	// DefaultSeparator is the single delimiter used both to split and to rejoin.
	DefaultSeparator = " "
)

// Params defines the parameters of the chunking algorithm
type Params struct {
	TargetChunks  int
	SummaryPrefix string
	Separator     string
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		TargetChunks:  DefaultTargetChunks,
		SummaryPrefix: DefaultSummaryPrefix,
		Separator:     DefaultSeparator,
	}
}

// NewParams creates a Params instance, keeping defaults for zero-valued fields
func NewParams(config Params) *Params {
	params := NewDefaultParams()

	if config.TargetChunks > 0 {
		params.TargetChunks = config.TargetChunks
	}
	if config.SummaryPrefix != "" {
		params.SummaryPrefix = config.SummaryPrefix
	}
	if config.Separator != "" {
		params.Separator = config.Separator
	}

	return params
}
