// Package render draws records and activity as tables, either styled for
// the terminal or as plain text suitable for rasterising.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"netledger/internal/domain"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

// RecordHeader is the column set of the record table
var RecordHeader = []string{
	"AID", "Name", "Building", "IP Location", "Public IP",
	"Private IP", "Bandwidth", "Status", "Install Date",
}

// ActivityHeader is the column set of the activity table
var ActivityHeader = []string{
	"Date", "Network Name", "AID", "Field", "Old Value", "New Value", "Note",
}

const (
	recordStatusCol  = 7
	activityFieldCol = 3
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true).
			Padding(0, 1)
	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Padding(0, 1)
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment))
	plainStyle = lipgloss.NewStyle().Padding(0, 1)
)

// statusStyle colours a status cell by lifecycle state
func statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case domain.StatusActive:
		return cellStyle.Foreground(lipgloss.Color(draculaGreen))
	case domain.StatusSuspended:
		return cellStyle.Foreground(lipgloss.Color(draculaOrange))
	case domain.StatusInactive:
		return cellStyle.Foreground(lipgloss.Color(draculaRed))
	}
	return cellStyle
}

// RecordRows converts records into table cells in RecordHeader order
func RecordRows(records []domain.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.AID, r.Name, r.Building, r.IPLocation, r.PublicIP,
			r.PrivateIP, r.Bandwidth, r.Status, r.InstallDate,
		})
	}
	return rows
}

// ActivityRows converts activity entries into table cells in
// ActivityHeader order
func ActivityRows(entries []domain.ActivityEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Date, e.NetworkName, e.NetworkAID, e.Field, e.Old(), e.New(), e.Note,
		})
	}
	return rows
}

// RecordTable renders records. When styled is false the table uses ASCII
// borders and no colour.
func RecordTable(records []domain.Record, styled bool) string {
	rows := RecordRows(records)
	if !styled {
		return plainTable(RecordHeader, rows)
	}

	t := styledTable(RecordHeader, rows)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == recordStatusCol && row >= 0 && row < len(rows) {
			return statusStyle(rows[row][col])
		}
		return cellStyle
	})
	return t.String()
}

// ActivityTable renders activity entries. When styled is false the table
// uses ASCII borders and no colour.
func ActivityTable(entries []domain.ActivityEntry, styled bool) string {
	rows := ActivityRows(entries)
	if !styled {
		return plainTable(ActivityHeader, rows)
	}

	fieldStyle := cellStyle.Foreground(lipgloss.Color(draculaCyan))
	t := styledTable(ActivityHeader, rows)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == activityFieldCol {
			return fieldStyle
		}
		return cellStyle
	})
	return t.String()
}

func styledTable(header []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(header...).
		Rows(rows...)
}

func plainTable(header []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return plainStyle }).
		String()
}
