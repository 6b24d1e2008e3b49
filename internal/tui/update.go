package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stickpad/stickpad/internal/logger"
	"github.com/stickpad/stickpad/internal/model"
	"github.com/stickpad/stickpad/internal/store"
)

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddNote, ModeEditNote, ModeAddTag:
			return m.updateInput(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirmPurge:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneNoteList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneNoteList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Enter):
		if m.pane == PaneSidebar {
			m.applySidebar()
			m.pane = PaneNoteList
		}

	case key.Matches(msg, keys.Add):
		return m.startAddNote()

	case key.Matches(msg, keys.Edit):
		return m.startEditNote()

	case key.Matches(msg, keys.Tag):
		return m.startAddTag()

	case key.Matches(msg, keys.Pin):
		m.handlePin()

	case key.Matches(msg, keys.Star):
		m.handleStar()

	case key.Matches(msg, keys.Color):
		m.handleCycleColor()

	case key.Matches(msg, keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, keys.Restore):
		m.handleRestore()

	case key.Matches(msg, keys.Empty):
		m.handleEmptyTrash()

	case key.Matches(msg, keys.Search):
		return m.startSearch()

	case key.Matches(msg, keys.Escape):
		if m.notes.SearchQuery() != "" {
			m.notes.SetSearchQuery("")
			m.clampNoteCursor()
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.sideCursor > 0 {
			m.sideCursor--
			m.applySidebar()
		}
	} else if m.noteCursor > 0 {
		m.noteCursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.sideCursor < sidebarTagOffset+len(m.notes.Tags())-1 {
			m.sideCursor++
			m.applySidebar()
		}
	} else if m.noteCursor < len(m.visibleNotes())-1 {
		m.noteCursor++
	}
}

func (m Model) startAddNote() (tea.Model, tea.Cmd) {
	if m.showTrash {
		return m, nil
	}
	m.mode = ModeAddNote
	m.input.SetValue("")
	m.input.Placeholder = m.tr.T("input.title")
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startEditNote() (tea.Model, tea.Cmd) {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil || note.InTrash() {
		return m, nil
	}
	m.mode = ModeEditNote
	m.input.SetValue(note.Title)
	m.input.Placeholder = m.tr.T("input.title")
	m.input.Focus()
	m.input.CursorEnd()
	return m, textinput.Blink
}

func (m Model) startAddTag() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTag
	m.input.SetValue("")
	m.input.Placeholder = m.tr.T("input.tag")
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	if m.showTrash {
		return m, nil
	}
	m.mode = ModeSearch
	m.input.SetValue(m.notes.SearchQuery())
	m.input.Placeholder = m.tr.T("search.placeholder")
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) handlePin() {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil || note.InTrash() {
		return
	}
	if err := m.notes.TogglePin(context.Background(), note.ID); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.noteCursor = 0 // the list resorts, so follow it to the top
}

func (m *Model) handleStar() {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil || note.InTrash() {
		return
	}
	if err := m.notes.ToggleStar(context.Background(), note.ID); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
	}
}

func (m *Model) handleCycleColor() {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil || note.InTrash() {
		return
	}
	next := model.Palette[0]
	for i, c := range model.Palette {
		if c == note.Color {
			next = model.Palette[(i+1)%len(model.Palette)]
			break
		}
	}
	patch := store.NotePatch{Color: &next}
	if err := m.notes.UpdateNote(context.Background(), note.ID, patch); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
	}
}

// handleDelete trashes an active note, or purges a trashed one. Purging
// asks for confirmation when the config demands it.
func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil {
		return m, nil
	}

	if !note.InTrash() {
		if err := m.notes.MoveToTrash(context.Background(), note.ID); err != nil {
			m.message = fmt.Sprintf("Error: %v", err)
		} else {
			m.message = fmt.Sprintf("Trashed: %s", note.Title)
			logger.Info("Note trashed", logger.F("id", note.ID))
		}
		m.clampNoteCursor()
		return m, nil
	}

	if m.cfg.ConfirmDelete {
		m.purgeID = note.ID
		m.mode = ModeConfirmPurge
		return m, nil
	}
	m.purge(note.ID)
	return m, nil
}

func (m *Model) purge(id string) {
	if err := m.notes.DeletePermanently(context.Background(), id); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = m.tr.T("trash.purged")
	logger.Info("Note purged", logger.F("id", id))
	m.clampNoteCursor()
}

func (m *Model) handleRestore() {
	note := m.currentNote()
	if m.pane != PaneNoteList || note == nil || !note.InTrash() {
		return
	}
	if err := m.notes.RestoreFromTrash(context.Background(), note.ID); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = m.tr.T("trash.restored")
	m.clampNoteCursor()
}

func (m *Model) handleEmptyTrash() {
	if !m.showTrash {
		return
	}
	if err := m.notes.EmptyTrash(context.Background()); err != nil {
		m.message = fmt.Sprintf("Error: %v", err)
		return
	}
	m.message = m.tr.T("trash.purged")
	m.noteCursor = 0
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		if value == "" {
			m.mode = ModeNormal
			return m, nil
		}

		ctx := context.Background()
		switch m.mode {
		case ModeAddNote:
			var tags []string
			if tag := m.currentTag(); tag != nil && m.notes.SelectedTag() == tag.ID {
				tags = []string{tag.ID}
			}
			if _, err := m.notes.AddNote(ctx, value, "", "", tags); err != nil {
				m.message = fmt.Sprintf("Error adding note: %v", err)
			} else {
				m.message = fmt.Sprintf("Added: %s", value)
			}
		case ModeEditNote:
			if note := m.currentNote(); note != nil {
				patch := store.NotePatch{Title: &value}
				if err := m.notes.UpdateNote(ctx, note.ID, patch); err != nil {
					m.message = fmt.Sprintf("Error updating note: %v", err)
				} else {
					m.message = fmt.Sprintf("Updated: %s", value)
				}
			}
		case ModeAddTag:
			if _, err := m.notes.AddTag(ctx, value, ""); err != nil {
				m.message = fmt.Sprintf("Error creating tag: %v", err)
			} else {
				m.message = fmt.Sprintf("Created tag: %s", value)
			}
		}

		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.notes.SetSearchQuery("")
		m.mode = ModeNormal
		m.clampNoteCursor()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.pane = PaneNoteList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Live filtering while typing
	m.notes.SetSearchQuery(m.input.Value())
	m.noteCursor = 0
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.purge(m.purgeID)
	}
	m.purgeID = ""
	m.mode = ModeNormal
	return m, nil
}
