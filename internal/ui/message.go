package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/setlists/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMembersLoaded MsgKind = iota
	MsgReorderDone
)

type membersResult struct {
	songs []models.SetlistSong
	err   error
}

// membersLoadedMsg is the constructor for [MsgMembersLoaded]
func membersLoadedMsg(songs []models.SetlistSong, err error) Msg {
	return Msg{kind: MsgMembersLoaded, data: membersResult{songs, err}}
}

// reorderDoneMsg is the constructor for [MsgReorderDone]
func reorderDoneMsg(songs []models.SetlistSong, err error) Msg {
	return Msg{kind: MsgReorderDone, data: membersResult{songs, err}}
}
