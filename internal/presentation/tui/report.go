package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/scene"
)

// Report builds a markdown summary of a project: its resource library with
// clone counts, then one table per scene listing objects and their layout.
func Report(p *scene.Project) string {
	var sb strings.Builder

	lib := p.Library()
	fmt.Fprintf(&sb, "# Library\n\n")
	if lib.Len() == 0 {
		sb.WriteString("_No resources._\n\n")
	} else {
		sb.WriteString("| Resource | Kind | Clones | Actions |\n|---|---|---|---|\n")
		for _, r := range lib.Resources() {
			fmt.Fprintf(&sb, "| %s | %s | %d | %d |\n",
				cell(r.Name()), r.Kind(), len(r.Clones()), actionCount(r))
		}
		sb.WriteString("\n")
	}

	for _, s := range p.Scenes() {
		fmt.Fprintf(&sb, "# Scene `%s` (%dx%d)\n\n", s.Name(), s.Width(), s.Height())
		if s.Len() == 0 {
			sb.WriteString("_Empty scene._\n\n")
			continue
		}
		sb.WriteString("| Object | Kind | Rect | Resource | Actions |\n|---|---|---|---|---|\n")
		for _, n := range s.Objects() {
			writeRow(&sb, n, 0)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, n *scene.Node, depth int) {
	name := strings.Repeat("↳ ", depth) + cell(n.Name())
	if !n.Visible() {
		name += " (hidden)"
	}
	res := "-"
	if r := n.Resource(); r != nil {
		res = cell(r.Name())
		if !n.IsSynced() {
			res += " (unsynced)"
		}
	}
	rect := n.Rect()
	fmt.Fprintf(sb, "| %s | %s | %d,%d %dx%d | %s | %d |\n",
		name, n.Kind(), rect.X, rect.Y, rect.Width, rect.Height, res, actionCount(n))

	if g := n.AsGroup(); g != nil {
		for _, c := range g.Children() {
			writeRow(sb, c, depth+1)
		}
	}
}

func actionCount(n *scene.Node) int {
	count := 0
	for _, ch := range domain.Channels {
		count += len(n.Actions(ch))
	}
	return count
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
