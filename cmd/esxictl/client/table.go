package client

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

// RenderStringTable renders a table as a string
func RenderStringTable(headers []string, data [][]string) string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader(headers)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()

	return tableString.String()
}

// RenderTableTruncateCol renders a table to w, truncating the column
// colNum if the table does not fit the terminal width
func RenderTableTruncateCol(w io.Writer, colNum int, headers []string, data [][]string) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = 0
	}
	fmt.Fprint(w, RenderStringTable(headers, TruncateCol(width, colNum, headers, data)))
}

// TruncateCol shortens values of column colNum so the rendered table
// fits in width (0 means no limit)
func TruncateCol(width int, colNum int, headers []string, data [][]string) [][]string {
	if width == 0 || len(data) == 0 {
		return data
	}

	// all lines have the same length
	lines := strings.Split(RenderStringTable(headers, data), "\n")
	overflow := utf8.RuneCountInString(lines[0]) - width
	if overflow <= 0 {
		return data
	}

	longest := 0
	for _, line := range data {
		if l := utf8.RuneCountInString(line[colNum]); l > longest {
			longest = l
		}
	}

	maxLen := longest - overflow
	if maxLen < 5 {
		// too short to be readable
		return data
	}

	for _, line := range data {
		runes := []rune(line[colNum])
		if len(runes) > maxLen {
			line[colNum] = string(runes[:maxLen-1]) + "…"
		}
	}
	return data
}
