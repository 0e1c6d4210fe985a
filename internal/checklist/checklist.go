// Package checklist writes a printable packing and booking checklist.
package checklist

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/gobabygo/internal/packing"
)

// Build returns a Markdown task list with items grouped by category,
// followed by the booking checklist.
func Build(title string, items []packing.Item, booking []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	order, groups := packing.ByCategory(items)
	for _, cat := range order {
		fmt.Fprintf(&b, "## %s\n\n", cat)
		for _, it := range groups[cat] {
			fmt.Fprintf(&b, "- [ ] %s\n", it.Name)
		}
		b.WriteString("\n")
	}

	if len(booking) > 0 {
		b.WriteString("## Booking\n\n")
		for _, s := range booking {
			fmt.Fprintf(&b, "- [ ] %s\n", s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// WriteChecklistFile writes the checklist to outPath.
// If there is nothing to check off, no file is created.
func WriteChecklistFile(title string, items []packing.Item, booking []string, outPath string) error {
	if len(items) == 0 && len(booking) == 0 {
		return nil
	}
	if err := os.WriteFile(outPath, []byte(Build(title, items, booking)), 0644); err != nil {
		return fmt.Errorf("checklist.WriteChecklistFile: %w", err)
	}
	return nil
}
