package inspect

import (
	"fmt"

	"github.com/docker/go-connections/nat"
)

var knownProtocols = map[string]bool{
	"tcp":  true,
	"udp":  true,
	"sctp": true,
}

// LintPorts returns one warning per port key that is not of the form
// port[/proto]. Keys are still passed through to the output untouched.
func LintPorts(ports []string) []string {
	var warnings []string
	for _, raw := range ports {
		proto, port := nat.SplitProtoPort(raw)
		if port == "" {
			warnings = append(warnings, fmt.Sprintf("port key %q has no port number", raw))
			continue
		}
		if !knownProtocols[proto] {
			warnings = append(warnings, fmt.Sprintf("port key %q has unknown protocol %q", raw, proto))
			continue
		}
		if _, err := nat.NewPort(proto, port); err != nil {
			warnings = append(warnings, fmt.Sprintf("port key %q: %v", raw, err))
		}
	}
	return warnings
}
