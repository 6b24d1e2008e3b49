package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/stickpad/stickpad/internal/config"
	"github.com/stickpad/stickpad/internal/i18n"
	"github.com/stickpad/stickpad/internal/logger"
	"github.com/stickpad/stickpad/internal/model"
	"github.com/stickpad/stickpad/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneNoteList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddNote
	ModeEditNote
	ModeAddTag
	ModeSearch
	ModeConfirmPurge
	ModeHelp
)

// Fixed sidebar rows above the tag list
const (
	sidebarAll = iota
	sidebarTrash
	sidebarTagOffset
)

// Model is the main TUI model
type Model struct {
	notes *store.Store
	cfg   *config.Config
	tr    *i18n.Translator
	theme Theme

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	sideCursor int
	noteCursor int
	showTrash  bool

	// Input
	input textinput.Model

	// Purge confirmation target
	purgeID string

	message string
}

// NewModel creates a new TUI model
func NewModel(notes *store.Store, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	tr := i18n.New(cfg.Language)

	ti := textinput.New()
	ti.Placeholder = tr.T("input.title")
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		notes: notes,
		cfg:   cfg,
		tr:    tr,
		theme: NewTheme(cfg.Theme),
		pane:  PaneSidebar,
		mode:  ModeNormal,
		input: ti,
	}

	logger.Debug("TUI model initialized",
		logger.F("notes", len(notes.Notes())),
		logger.F("tags", len(notes.Tags())))
	return m
}

// visibleNotes returns the notes for the current view: the trash when the
// trash row is selected, otherwise the filtered active notes.
func (m *Model) visibleNotes() []model.Note {
	if m.showTrash {
		return m.notes.TrashNotes()
	}
	return m.notes.FilteredNotes()
}

func (m *Model) currentNote() *model.Note {
	visible := m.visibleNotes()
	if m.noteCursor < len(visible) {
		return &visible[m.noteCursor]
	}
	return nil
}

func (m *Model) currentTag() *model.Tag {
	idx := m.sideCursor - sidebarTagOffset
	tags := m.notes.Tags()
	if idx >= 0 && idx < len(tags) {
		return &tags[idx]
	}
	return nil
}

// applySidebar translates the sidebar cursor into store filter state
func (m *Model) applySidebar() {
	m.noteCursor = 0
	switch m.sideCursor {
	case sidebarAll:
		m.showTrash = false
		m.notes.SelectTag("")
	case sidebarTrash:
		m.showTrash = true
		m.notes.SelectTag("")
	default:
		m.showTrash = false
		if tag := m.currentTag(); tag != nil {
			m.notes.SelectTag(tag.ID)
		}
	}
}

// clampNoteCursor keeps the cursor inside the visible list after removals
func (m *Model) clampNoteCursor() {
	visible := len(m.visibleNotes())
	if m.noteCursor >= visible && m.noteCursor > 0 {
		m.noteCursor = visible - 1
	}
	if m.noteCursor < 0 {
		m.noteCursor = 0
	}
}
