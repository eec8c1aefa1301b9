// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-fleed/internal/utils"
	"github.com/MKhiriev/go-fleed/models"
)

const (
	uiDivider = "──────────────────────────────────────────────────────"

	// listRows is the number of list rows shown at once.
	listRows = 8

	previewWidth = 60
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: выход"))

	return b.String()
}

// writeFooter appends the status line and the error line of a screen.
func writeFooter(b *strings.Builder, status, errMsg string) {
	if status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("OK: " + status))
		b.WriteString("\n")
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + errMsg))
		b.WriteString("\n")
	}
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// plainText strips markup from a post body and folds it into one line.
func plainText(body string) string {
	return strings.Join(strings.Fields(utils.StripHTMLTags(body)), " ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02.01.2006 15:04")
}

func authorName(author models.UserSummary) string {
	if author.Name == "" {
		return fmt.Sprintf("user#%d", author.ID)
	}
	return author.Name
}

// listWindow returns the bounds of the rows to show so that idx stays
// visible.
func listWindow(idx, total, rows int) (from, to int) {
	if total <= rows {
		return 0, total
	}

	from = idx - rows/2
	if from < 0 {
		from = 0
	}
	to = from + rows
	if to > total {
		to = total
		from = to - rows
	}
	return from, to
}

// clampIndex keeps a list cursor inside [0, total).
func clampIndex(idx, total int) int {
	if idx >= total {
		idx = total - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func cursorMark(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func mediaLabel(post models.Post) string {
	switch {
	case post.IsVideo():
		return "[видео] "
	case post.IsImage():
		return "[фото] "
	default:
		return ""
	}
}
