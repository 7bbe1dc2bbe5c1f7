package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/tripwizard/pkg/domain"
)

// Overlay contains dynamic session data to visualize on the flow graph.
type Overlay struct {
	Visited []domain.Screen
	Current domain.Screen
}

// GenerateMermaid produces a Mermaid flowchart of the wizard screens and their transitions.
// It applies semantic styling:
// - Preloading (entry): ((Circle))
// - Collecting (user input): [/Parallelogram/]
// - Generating (async work): [[Subroutine]]
// - Default: [Rectangle]
// Failure edges are dotted. Overlay styles (visited/current) are applied if provided.
func GenerateMermaid(flow []domain.Transition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range domain.Screens {
		opener, closer := "[", "]"
		switch s {
		case domain.ScreenPreloading:
			opener, closer = "((", "))"
		case domain.ScreenCollecting:
			opener, closer = "[/", "/]"
		case domain.ScreenGenerating:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(s), opener, s, closer))
	}

	for _, t := range flow {
		label := strings.ReplaceAll(t.Reason, "\"", "'")
		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if t.Reason == domain.ReasonGenerateFailed || t.Reason == domain.ReasonCancel {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(t.From), arrow, nodeID(t.To)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.Screen]bool)
		for _, s := range overlay.Visited {
			if seen[s] || !s.Valid() || s == overlay.Current {
				continue
			}
			seen[s] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(s)))
		}
		if overlay.Current.Valid() {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String()
}

// OverlayFor derives the overlay of a session snapshot. Screens before the
// current one in flow order are marked visited.
func OverlayFor(snap domain.Snapshot) *Overlay {
	o := &Overlay{Current: snap.Screen}
	for _, s := range domain.Screens {
		if s == snap.Screen {
			break
		}
		o.Visited = append(o.Visited, s)
	}
	return o
}

func nodeID(s domain.Screen) string {
	return strings.ReplaceAll(string(s), "-", "_")
}
