package command

import (
	"strconv"

	"github.com/yndnr/snipboard/internal/cli/output"
	"github.com/yndnr/snipboard/internal/core/domain"
)

// tabSummary is one entry of GET /api/v1/documents.
type tabSummary struct {
	ID           domain.DocumentID `json:"id"`
	Name         string            `json:"name"`
	SnippetCount int               `json:"snippet_count"`
	Active       bool              `json:"active"`
}

type tabList struct {
	Documents []tabSummary      `json:"documents"`
	ActiveID  domain.DocumentID `json:"active_id,omitempty"`
}

// Table marks the active tab with an asterisk.
func (l tabList) Table() *output.Table {
	t := &output.Table{Headers: []string{"", "ID", "NAME", "SNIPPETS"}}
	for _, d := range l.Documents {
		mark := ""
		if d.Active {
			mark = "*"
		}
		t.AddRow(mark, d.ID.String(), d.Name, strconv.Itoa(d.SnippetCount))
	}
	return t
}

type documentView struct {
	ID       domain.DocumentID `json:"id"`
	Name     string            `json:"name"`
	Content  string            `json:"content"`
	Snippets []domain.Snippet  `json:"snippets"`
	Active   bool              `json:"active"`
}

func (d documentView) Table() *output.Table {
	return snippetList(d.Snippets).Table()
}

// snippetList renders snippets with their zero-based index, the number
// accepted by "doc snippet".
type snippetList []domain.Snippet

func (s snippetList) Table() *output.Table {
	t := &output.Table{Headers: []string{"#", "COMMENT", "COMMAND"}}
	for i, sn := range s {
		comment := "-"
		if sn.HasComment {
			comment = sn.Comment
		}
		t.AddRow(strconv.Itoa(i), comment, sn.Command)
	}
	return t
}

type activeView struct {
	ActiveID domain.DocumentID `json:"active_id,omitempty"`
}

type themeView struct {
	Preference domain.ThemePreference `json:"preference"`
}
