package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/biomorph/pkg/domain"
	"github.com/aretw0/biomorph/pkg/turtle"
)

// maxCommandPreview caps how much of the expanded command the report shows.
const maxCommandPreview = 120

// Report describes a genome and, when cmd is not empty, its developed form, as markdown.
func Report(id string, g domain.Genome, cmd string, ops []domain.DrawOp) string {
	var sb strings.Builder

	title := "Biomorph"
	if id != "" {
		title += " `" + id + "`"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **Axiom:** `%s`\n", g.Axiom)
	fmt.Fprintf(&sb, "- **Turn angle:** %d°\n\n", g.TurnAngle)

	sb.WriteString("## Rules\n\n| # | Predecessor | Successor | Brackets |\n|---|---|---|---|\n")
	for i, r := range g.Rules {
		fmt.Fprintf(&sb, "| %d | `%c` | `%s` | %s |\n", i+1, r.Predecessor, r.Successor, balance(r.Successor))
	}

	if cmd == "" {
		return sb.String()
	}

	preview := cmd
	if len(preview) > maxCommandPreview {
		preview = preview[:maxCommandPreview] + "…"
	}
	sb.WriteString("\n## Development\n\n")
	fmt.Fprintf(&sb, "- **Command length:** %d\n", len(cmd))
	fmt.Fprintf(&sb, "- **Lines:** %d\n", domain.CountKind(ops, domain.OpLine))
	fmt.Fprintf(&sb, "- **Branches:** %d\n", domain.CountKind(ops, domain.OpPush))
	if minPt, maxPt, ok := turtle.Bounds(ops); ok {
		fmt.Fprintf(&sb, "- **Extent:** %.1f × %.1f\n", maxPt.X-minPt.X, maxPt.Y-minPt.Y)
	}
	fmt.Fprintf(&sb, "\n```\n%s\n```\n", preview)
	return sb.String()
}

// balance summarizes bracket nesting, which mutation may leave uneven.
func balance(s string) string {
	open := strings.Count(s, string(domain.SymbolOpen))
	closed := strings.Count(s, string(domain.SymbolClose))
	if open == closed {
		return fmt.Sprintf("%d pairs", open)
	}
	return fmt.Sprintf("%d open / %d close", open, closed)
}
