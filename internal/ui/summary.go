package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/ytexport/internal/models"
)

// Summary holds the figures reported after an export.
type Summary struct {
	ChannelID  string
	Locator    string
	Videos     int
	WithStats  int // videos that received statistics
	Comments   int // top-level comments
	Replies    int
	Files      []string
	ExportID   string
	Elapsed    time.Duration
	NoComments bool
}

// NewSummary counts the rows of export.
func NewSummary(export *models.ChannelExport, files []string, exportID string, elapsed time.Duration) Summary {
	s := Summary{Files: files, ExportID: exportID, Elapsed: elapsed}
	if export == nil {
		return s
	}

	s.ChannelID = export.ChannelID
	s.Locator = export.Locator
	s.Videos = len(export.Videos)
	for _, v := range export.Videos {
		if v.HasStatistics() {
			s.WithStats++
		}
	}
	for _, c := range export.Comments {
		if c.IsReply() {
			s.Replies++
		} else {
			s.Comments++
		}
	}
	return s
}

// RenderSummary formats s as a short report.
func (p *Palette) RenderSummary(s Summary) string {
	rows := [][2]string{
		{"Channel", fmt.Sprintf("%s (%s)", s.ChannelID, s.Locator)},
		{"Videos", fmt.Sprintf("%d (%d with statistics)", s.Videos, s.WithStats)},
	}
	if s.NoComments {
		rows = append(rows, [2]string{"Comments", "skipped"})
	} else {
		rows = append(rows, [2]string{"Comments", fmt.Sprintf("%d (+%d replies)", s.Comments, s.Replies)})
	}
	if len(s.Files) > 0 {
		rows = append(rows, [2]string{"Output", strings.Join(s.Files, ", ")})
	}
	if s.ExportID != "" {
		rows = append(rows, [2]string{"Run", s.ExportID})
	}
	if s.Elapsed > 0 {
		rows = append(rows, [2]string{"Elapsed", s.Elapsed.Round(time.Millisecond).String()})
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, p.label.Render(row[0]), row[1])
	}

	if s.Videos == 0 {
		lines = append(lines, p.Warn("The channel has no public videos; the sheets only contain headers."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, p.OK("✓ Export complete"), "", strings.Join(lines, "\n")) + "\n"
}
