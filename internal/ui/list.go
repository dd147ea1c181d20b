package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/setlists/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.SetlistSong] to implement [list.Item].
type songItem struct {
	song    models.SetlistSong
	index   int
	grabbed bool
}

func (i songItem) FilterValue() string { return i.song.Title }

func (i songItem) Title() string {
	title := fmt.Sprintf("%d. %s", i.index+1, i.song.Title)
	if i.grabbed {
		return styles.held.Render("≡ " + title)
	}
	return title
}

func (i songItem) Description() string {
	if i.song.AddedAt.IsZero() {
		return fmt.Sprintf("song #%d", i.song.ID)
	}
	return fmt.Sprintf("song #%d • added %s", i.song.ID, i.song.AddedAt.Format("Jan 2, 2006"))
}
