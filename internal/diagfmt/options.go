package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строк контекста вокруг основной строки
	PathMode    PathMode
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
	IncludeFixes     bool
}

// Format selects how read results are printed.
type Format uint8

const (
	// FormatNDJSON prints one tagged JSON record per top-level form.
	FormatNDJSON Format = iota
	// FormatPretty prints forms back in s-expression syntax.
	FormatPretty
	// FormatTree prints an indented cell-by-cell view.
	FormatTree
	// FormatDump prints a Go-syntax deep dump.
	FormatDump
)

// ParseFormat maps a flag value to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "ndjson", "json":
		return FormatNDJSON, true
	case "pretty":
		return FormatPretty, true
	case "tree":
		return FormatTree, true
	case "dump":
		return FormatDump, true
	}
	return FormatNDJSON, false
}

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatTree:
		return "tree"
	case FormatDump:
		return "dump"
	default:
		return "ndjson"
	}
}

func pathFor(mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}
