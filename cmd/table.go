package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/desertthunder/setlists/internal/models"
)

// renderMembers draws an ordered setlist as a table: position, song ID, title, date added.
func renderMembers(songs []models.SetlistSong) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Pos", "ID", "Title", "Added"})

	for _, s := range songs {
		added := ""
		if !s.AddedAt.IsZero() {
			added = s.AddedAt.Format("2006-01-02 15:04")
		}
		tw.AppendRow(table.Row{strconv.Itoa(s.Position), strconv.FormatInt(s.ID, 10), s.Title, added})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
