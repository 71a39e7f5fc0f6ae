package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
)

// Overlay marks objects to highlight on the graph, by scene-qualified path
// ("intro/menu/new") or library path ("library/door").
type Overlay struct {
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart of a project: the resource
// library and every scene as subgraphs, group containment as solid edges
// and clone links as dotted edges to their resource.
// Shapes:
// - Group: [[Subroutine]]
// - Clone: [/Parallelogram/]
// - Resource: ([Stadium])
// - Default: [Rectangle]
func GenerateMermaid(p *scene.Project, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[scene.ID]string)
	var links []string

	var walk func(prefix string, n *scene.Node, depth int)
	walk = func(prefix string, n *scene.Node, depth int) {
		path := prefix + "/" + n.Name()
		id := sanitizeMermaidID(path)
		ids[n.ID()] = id

		indent := strings.Repeat("    ", depth)
		opener, closer := shape(n)
		fmt.Fprintf(&sb, "%s%s%s\"%s\"%s\n", indent, id, opener, label(n), closer)

		if res := n.Resource(); res != nil {
			links = append(links, cloneEdge(n, res))
		}
		if g := n.AsGroup(); g != nil {
			for _, c := range g.Children() {
				walk(path, c, depth)
				links = append(links, fmt.Sprintf("%s --> %s", id, "%"+fmt.Sprint(c.ID())))
			}
		}
	}

	if lib := p.Library(); lib.Len() > 0 {
		sb.WriteString("    subgraph library[\"Library\"]\n")
		for _, r := range lib.Resources() {
			walk("library", r, 2)
		}
		sb.WriteString("    end\n")
	}
	for _, s := range p.Scenes() {
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", sanitizeMermaidID("scene/"+s.Name()), escape(s.Name()))
		for _, n := range s.Objects() {
			walk(s.Name(), n, 2)
		}
		sb.WriteString("    end\n")
	}

	for _, l := range links {
		sb.WriteString("    " + resolve(l, ids) + "\n")
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, path := range overlay.Highlight {
			id := sanitizeMermaidID(path)
			if id != "" && !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s highlight;\n", id)
			}
		}
	}

	return sb.String()
}

func shape(n *scene.Node) (string, string) {
	switch {
	case n.AsGroup() != nil:
		return "[[", "]]"
	case n.Resource() != nil:
		return "[/", "/]"
	case n.IsResource():
		return "([", "])"
	}
	return "[", "]"
}

func label(n *scene.Node) string {
	var parts []string
	parts = append(parts, escape(n.Name()), string(n.Kind()))
	count := 0
	for _, ch := range domain.Channels {
		count += len(n.Actions(ch))
	}
	if count > 0 {
		parts = append(parts, fmt.Sprintf("%d actions", count))
	}
	if g := n.AsGroup(); g != nil && g.ObjectsSynced() {
		parts = append(parts, "synced")
	}
	return strings.Join(parts, " <br/> ")
}

// cloneEdge is resolved once every node has an ID.
func cloneEdge(n, res *scene.Node) string {
	arrow := "-. clone .->"
	if !n.IsSynced() {
		arrow = "-. unsynced .->"
	}
	return fmt.Sprintf("%%%d %s %%%d", n.ID(), arrow, res.ID())
}

// resolve replaces %<handle> placeholders with Mermaid IDs.
func resolve(line string, ids map[scene.ID]string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if !strings.HasPrefix(f, "%") {
			continue
		}
		if h, err := strconv.ParseUint(f[1:], 10, 64); err == nil {
			if id, ok := ids[scene.ID(h)]; ok {
				fields[i] = id
			}
		}
	}
	return strings.Join(fields, " ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "__", "\\", "_", " ", "_", "\"", "_")
	return r.Replace(id)
}
