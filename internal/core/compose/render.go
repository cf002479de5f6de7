package compose

import (
	"strings"

	"github.com/artpar/inspect2compose/internal/core/inspect"
)

// =============================================================================
// Render Options
// =============================================================================

// DefaultVersion is the value written to the top-level version key.
const DefaultVersion = "3"

// ListStyle controls how an empty list is written.
type ListStyle string

const (
	// ListStyleHeader writes the bare key with no entries, e.g. "ports:".
	// YAML parsers read this as null, not as an empty list.
	ListStyleHeader ListStyle = "header"
	// ListStyleFlow writes an explicit empty collection, e.g. "ports: []".
	ListStyleFlow ListStyle = "flow"
)

// ParseListStyle validates a configured list style name.
func ParseListStyle(s string) (ListStyle, error) {
	switch ListStyle(strings.ToLower(strings.TrimSpace(s))) {
	case ListStyleHeader, "":
		return ListStyleHeader, nil
	case ListStyleFlow:
		return ListStyleFlow, nil
	default:
		return "", NewRenderError("compose.empty_lists", "unknown style "+s+" (want header or flow)", ErrInvalidListStyle)
	}
}

// Options configures Render.
type Options struct {
	Version    string
	EmptyLists ListStyle
}

// DefaultOptions returns options that reproduce the reference output byte for byte.
func DefaultOptions() Options {
	return Options{
		Version:    DefaultVersion,
		EmptyLists: ListStyleHeader,
	}
}

// =============================================================================
// Renderer
// =============================================================================

// Render writes spec as a compose file with one service and its networks
// declared external. Values are written verbatim: only ports and volumes are
// wrapped in double quotes, nothing is escaped.
func Render(spec *inspect.ServiceSpec, opts Options) (string, error) {
	if spec == nil {
		return "", NewRenderError("", "nothing to render", ErrNilSpec)
	}
	if spec.Name == "" {
		return "", NewRenderError("services", "service name is empty", ErrEmptyServiceName)
	}
	if opts.Version == "" {
		return "", NewRenderError("version", "compose version is empty", ErrEmptyVersionValue)
	}
	if _, err := ParseListStyle(string(opts.EmptyLists)); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(`version: "` + opts.Version + `"` + "\n")
	b.WriteString("\nservices:\n")
	b.WriteString("  " + spec.Name + ":\n")
	b.WriteString("    image: " + spec.Image + "\n")
	b.WriteString("    restart: " + spec.RestartPolicy + "\n")

	writeList(&b, "networks", spec.Networks, false, opts.EmptyLists)
	writeList(&b, "ports", spec.Ports, true, opts.EmptyLists)
	writeList(&b, "volumes", spec.Volumes, true, opts.EmptyLists)
	writeList(&b, "environment", spec.Environment, false, opts.EmptyLists)

	if len(spec.Networks) == 0 && opts.EmptyLists == ListStyleFlow {
		b.WriteString("\nnetworks: {}\n")
		return b.String(), nil
	}

	b.WriteString("\nnetworks:\n")
	for _, network := range spec.Networks {
		b.WriteString("  " + network + ":\n")
		b.WriteString("    external: true\n")
	}

	return b.String(), nil
}

// writeList writes one service-level list key and its entries.
func writeList(b *strings.Builder, key string, entries []string, quoted bool, style ListStyle) {
	if len(entries) == 0 && style == ListStyleFlow {
		b.WriteString("    " + key + ": []\n")
		return
	}

	b.WriteString("    " + key + ":\n")
	for _, entry := range entries {
		if quoted {
			entry = `"` + entry + `"`
		}
		b.WriteString("      - " + entry + "\n")
	}
}
