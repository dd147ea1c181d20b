package ui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/models"
)

// SetlistClient is the part of the setlist API the reorder view talks to.
type SetlistClient interface {
	Members(ctx context.Context, setlistID int64) ([]models.SetlistSong, error)
	Reorder(ctx context.Context, setlistID int64, ordering models.Ordering) ([]models.SetlistSong, error)
}

// Model represents the reorder view state.
//
// songs is what the user sees outside a grab. After a drop it holds the optimistic order until the server
// answers; snapshot keeps the order from before the drop so a failed submission can be undone.
type Model struct {
	ctx       context.Context
	client    SetlistClient
	setlistID int64
	logger    *log.Logger

	songs    []models.SetlistSong
	snapshot []models.SetlistSong
	moved    int64
	cursor   int
	from     int
	grabbed  bool
	pending  bool
	loading  bool
	saved    bool
	err      error

	width  int
	height int
	list   list.Model
	help   help.Model
	keys   keyMap
}

// NewModel creates a reorder view for one setlist.
func NewModel(ctx context.Context, client SetlistClient, setlistID int64, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}

	songs := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songs.Title = fmt.Sprintf("Setlist #%d", setlistID)
	songs.SetShowStatusBar(false)
	songs.SetShowHelp(false)
	songs.SetFilteringEnabled(false)

	return &Model{
		ctx:       ctx,
		client:    client,
		setlistID: setlistID,
		logger:    logger,
		list:      songs,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the setlist from the server.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.fetchMembers()
}

// Ordering returns the order currently shown outside of a grab, optimistic or confirmed.
func (m *Model) Ordering() models.Ordering { return models.OrderingOf(m.songs) }

// Cursor returns the highlighted row. While a row is grabbed this is its destination.
func (m *Model) Cursor() int { return m.cursor }

// Grabbed reports whether a row is being dragged.
func (m *Model) Grabbed() bool { return m.grabbed }

// Pending reports whether a reorder submission is in flight.
func (m *Model) Pending() bool { return m.pending }

// Err returns the last load or reorder failure, cleared by the next success.
func (m *Model) Err() error { return m.err }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		result, _ := msg.data.(membersResult)
		switch msg.kind {
		case MsgMembersLoaded:
			m.membersLoaded(result)
		case MsgReorderDone:
			m.reorderDone(result)
		}
		return m, nil
	}

	return m, nil
}

// View renders the setlist, the submission status, and contextual help.
func (m *Model) View() string {
	var body string
	switch {
	case m.loading && len(m.songs) == 0:
		body = styles.status.Render("Loading setlist...")
	case len(m.songs) == 0 && m.err == nil:
		body = styles.title.Render(m.list.Title) + "\n" + styles.status.Render("No songs in this setlist")
	default:
		body = m.list.View()
	}

	var status string
	switch {
	case m.pending:
		status = styles.status.Render("Saving order...")
	case m.err != nil:
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.saved:
		status = styles.saved.Render("✓ Order saved")
	}

	helpKeys := m.keys.ShortHelp()
	if m.grabbed {
		helpKeys = m.keys.grabbedHelp()
	}

	return fmt.Sprintf("%s\n\n%s\n%s", body, status, m.help.ShortHelpView(helpKeys))
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if m.grabbed {
		return m.handleGrabbedKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.grab):
		if len(m.songs) > 0 {
			m.grabbed = true
			m.from = m.cursor
			m.saved = false
			m.sync()
		}
	case key.Matches(msg, m.keys.reload):
		if !m.pending {
			m.loading = true
			return m, m.fetchMembers()
		}
	}
	return m, nil
}

func (m *Model) handleGrabbedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.drop):
		return m, m.drop()
	case key.Matches(msg, m.keys.cancel):
		m.grabbed = false
		m.cursor = m.from
		m.sync()
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(1)
	}
	return m, nil
}

// drop ends a drag: it computes the full ordering, shows it right away, and submits it.
// A drop while another submission is in flight is ignored and the row stays grabbed.
func (m *Model) drop() tea.Cmd {
	if m.pending {
		return nil
	}

	from, to := m.from, m.cursor
	m.grabbed = false

	next, err := models.OrderingOf(m.songs).Move(from, to)
	if err != nil {
		m.err = err
		m.sync()
		return nil
	}
	if from == to {
		m.sync()
		return nil
	}

	m.snapshot = slices.Clone(m.songs)
	m.moved = m.songs[from].ID
	m.songs = arrange(m.songs, next)
	m.pending = true
	m.err = nil
	m.sync()

	return m.submit(next)
}

func (m *Model) membersLoaded(result membersResult) {
	m.loading = false
	if result.err != nil {
		m.err = result.err
		m.logger.Error("failed to load setlist", "setlist", m.setlistID, "err", result.err)
		return
	}

	m.songs = result.songs
	m.grabbed = false
	m.err = nil
	m.cursor = min(m.cursor, max(len(m.songs)-1, 0))
	m.sync()
}

// reorderDone reconciles the optimistic order with the server's answer. The answer always wins;
// on failure the order from before the drop comes back.
func (m *Model) reorderDone(result membersResult) {
	m.pending = false

	// A row grabbed while the submission was in flight stays attached to its song, not its index.
	var held int64
	if m.grabbed && m.from < len(m.songs) {
		held = m.songs[m.from].ID
	}

	if result.err != nil {
		m.logger.Warn("reorder rejected, restoring previous order", "setlist", m.setlistID, "err", result.err)
		m.songs = m.snapshot
		m.err = result.err
		m.saved = false
	} else {
		m.logger.Debug("reorder saved", "setlist", m.setlistID, "songs", len(result.songs))
		m.songs = result.songs
		m.err = nil
		m.saved = true
	}
	m.snapshot = nil

	if i := slices.IndexFunc(m.songs, func(s models.SetlistSong) bool { return s.ID == m.moved }); i >= 0 && !m.grabbed {
		m.cursor = i
	}
	if m.grabbed {
		if i := slices.IndexFunc(m.songs, func(s models.SetlistSong) bool { return s.ID == held }); i >= 0 {
			m.from = i
		} else {
			m.grabbed = false
		}
	}
	m.cursor = min(m.cursor, max(len(m.songs)-1, 0))
	m.sync()
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.songs) {
		return
	}
	m.cursor = next
	m.sync()
}

// visible is the order to render: while grabbed, the held row is previewed at the cursor.
func (m *Model) visible() []models.SetlistSong {
	if !m.grabbed {
		return m.songs
	}
	preview, err := models.OrderingOf(m.songs).Move(m.from, m.cursor)
	if err != nil {
		return m.songs
	}
	return arrange(m.songs, preview)
}

func (m *Model) sync() {
	visible := m.visible()
	items := make([]list.Item, len(visible))
	for i, s := range visible {
		items[i] = songItem{song: s, index: i, grabbed: m.grabbed && i == m.cursor}
	}
	m.list.SetItems(items)
	m.list.Select(m.cursor)
}

func (m *Model) fetchMembers() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.client.Members(m.ctx, m.setlistID)
		return membersLoadedMsg(songs, err)
	}
}

func (m *Model) submit(ordering models.Ordering) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.client.Reorder(m.ctx, m.setlistID, ordering)
		return reorderDoneMsg(songs, err)
	}
}

// arrange returns songs in the given order with positions renumbered from zero.
func arrange(songs []models.SetlistSong, ordering models.Ordering) []models.SetlistSong {
	byID := make(map[int64]models.SetlistSong, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}

	out := make([]models.SetlistSong, 0, len(ordering))
	for i, id := range ordering {
		s := byID[id]
		s.Position = i
		out = append(out, s)
	}
	return out
}
