// Package display provides the static iconography for the rendered wiki page.
//
// Rule: code is for machines, icons and words are for humans. The wiki
// surface has no interactive UI, so every signal is conveyed through an icon
// with a hover tooltip and, where useful, a link target.
package display

import (
	"fmt"
	"html"

	"overlayhub/internal/support"
)

// Marker renders an icon with a hover tooltip as inline HTML, the only kind
// of tooltip a static Markdown page can carry.
func Marker(icon, tooltip string) string {
	return fmt.Sprintf(`<span title=%q>%s</span>`, html.EscapeString(tooltip), icon)
}

// --- Support tiers ---

var tierIcons = map[support.Tier]string{
	support.Supported:   "✅",
	support.TechPreview: "🔵",
	support.Community:   "🟠",
	support.Unknown:     "❓",
}

// TierIcon returns the icon for a support tier.
func TierIcon(t support.Tier) string {
	return tierIcons[t]
}

// TierMarker returns the tier icon with the tier name as tooltip.
func TierMarker(t support.Tier) string {
	return Marker(TierIcon(t), t.String())
}

// --- Workspace structure ---

// StructureMarker returns the layout icon: monorepo subtree vs root-level
// (flat) plugins.
func StructureMarker(flat bool) string {
	if flat {
		return Marker("📄", "Flat layout (root-level plugins)")
	}
	return Marker("🗂️", "Monorepo layout (workspace subtree)")
}

// --- Presence markers ---

// PatchesMarker signals that the workspace carries patches.
func PatchesMarker(count int) string {
	return Marker("🩹", fmt.Sprintf("%d patch file(s)", count))
}

// OverlaysMarker signals that the workspace carries source overlays.
func OverlaysMarker(count int) string {
	return Marker("📋", fmt.Sprintf("%d overlay file(s)", count))
}

// MetadataMarker signals that plugin metadata files are present (green) or
// missing (white).
func MetadataMarker(present bool) string {
	if present {
		return Marker("🟢", "Plugin metadata present")
	}
	return Marker("⚪", "No plugin metadata")
}

// PendingPRMarker signals open automation PRs touching the workspace,
// linking to each one.
func PendingPRMarker(prLinks string) string {
	return Marker("⚠️", "Pending update PRs") + " " + prLinks
}
