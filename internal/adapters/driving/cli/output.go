package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04"

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// formatTime renders t, or "-" for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// orDash returns s, or "-" if empty.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// formatSize renders a byte count.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// printDocumentLine prints one document in list form.
func printDocumentLine(cmd *cobra.Command, d *domain.Document) {
	mark := " "
	if d.Bookmarked {
		mark = "*"
	}
	cmd.Printf("%s %-6s %-10s %-8s %-12s %s\n", mark, d.ID, d.Status, d.Priority, d.Type, d.Title)
}

// highlight wraps the highlighted spans of s in brackets.
func highlight(s string, spans []domain.Span) string {
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.Start < last || sp.End > len(s) || sp.Start >= sp.End {
			continue
		}
		b.WriteString(s[last:sp.Start])
		b.WriteString("[")
		b.WriteString(s[sp.Start:sp.End])
		b.WriteString("]")
		last = sp.End
	}
	b.WriteString(s[last:])
	return b.String()
}
