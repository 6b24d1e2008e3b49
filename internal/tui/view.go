package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stickpad/stickpad/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebar := m.renderSidebar()
	noteList := m.renderNoteList()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, noteList)

	if m.mode == ModeAddNote || m.mode == ModeEditNote || m.mode == ModeAddTag {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeConfirmPurge {
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderConfirmModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderSidebar() string {
	var s string

	s += lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(m.tr.T("app.title")) + "\n"
	s += m.theme.Help.Render(time.Now().Format("2006-01-02")) + "\n"
	s += m.theme.Divider.Render("─────────────────") + "\n\n"

	rows := []struct {
		label string
		count int
	}{
		{m.tr.T("notes.all"), len(m.notes.ActiveNotes())},
		{m.tr.T("trash.title"), len(m.notes.TrashNotes())},
	}
	for i, row := range rows {
		s += m.sidebarRow(i, row.label, row.count)
	}

	s += "\n"
	for i, tag := range m.notes.Tags() {
		s += m.sidebarRow(sidebarTagOffset+i, tag.Name, m.tagNoteCount(tag.ID))
	}

	s += "\n" + m.theme.Divider.Render("─────────────────") + "\n"
	s += m.theme.Help.Render("t new tag")

	return m.theme.Sidebar.Height(m.height - 2).Render(s)
}

func (m Model) sidebarRow(index int, label string, count int) string {
	cursor := "  "
	style := m.theme.Item
	if index == m.sideCursor {
		cursor = "❯ "
		if m.pane == PaneSidebar {
			style = m.theme.ItemSelected
		}
	}
	line := fmt.Sprintf("%s%-11s %d", cursor, truncate(label, 11), count)
	return style.Render(line) + "\n"
}

func (m Model) tagNoteCount(tagID string) int {
	count := 0
	for _, n := range m.notes.ActiveNotes() {
		if n.HasTag(tagID) {
			count++
		}
	}
	return count
}

func (m Model) renderNoteList() string {
	width := m.width - 26
	var s string

	header := m.listHeader()
	s += lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(header) + "\n"
	s += m.theme.Divider.Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	visible := m.visibleNotes()
	if len(visible) == 0 {
		if m.showTrash {
			s += m.theme.Help.Render("  " + m.tr.T("trash.empty"))
		} else {
			s += m.theme.Help.Render("  " + m.tr.T("notes.empty"))
		}
	}

	for i, n := range visible {
		s += m.renderNoteLine(i, n, width)
	}

	return m.theme.NoteList.Width(width).Height(m.height - 2).Render(s)
}

func (m Model) listHeader() string {
	if m.showTrash {
		header := m.tr.T("trash.title")
		if m.cfg.AutoClean {
			header += fmt.Sprintf(" (kept %d days)", m.cfg.RetentionDays)
		}
		return header
	}
	header := m.tr.T("notes.all")
	if tagID := m.notes.SelectedTag(); tagID != "" {
		if name, ok := m.notes.TagName(tagID); ok {
			header = "#" + name
		}
	}
	if q := m.notes.SearchQuery(); q != "" {
		header += fmt.Sprintf("  /%s", q)
	}
	return header
}

func (m Model) renderNoteLine(index int, n model.Note, width int) string {
	cursor := "  "
	style := m.theme.Item
	if index == m.noteCursor && m.pane == PaneNoteList {
		cursor = "❯ "
		style = m.theme.ItemSelected
	}
	if n.InTrash() {
		style = m.theme.Trashed
	}

	var badges []string
	if n.Pinned {
		badges = append(badges, "📌")
	}
	if n.Starred {
		badges = append(badges, "★")
	}
	if n.Encrypted() {
		badges = append(badges, "🔒")
	}
	for _, tagID := range n.Tags {
		if name, ok := m.notes.TagName(tagID); ok {
			badges = append(badges, "#"+name)
		}
	}

	title := truncate(n.Title, max(width-30, 8))
	line := fmt.Sprintf("%s%s %-*s %s", cursor, noteSwatch(n.Color), max(width-30, 8), title, strings.Join(badges, " "))
	return style.Render(line) + "\n"
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeSearch {
		return m.theme.StatusBar.Width(m.width).Render("/" + m.input.View())
	}

	help := "a:add  e:edit  p:pin  s:star  c:color  d:trash  /:search  ?:help  q:" + m.tr.T("help.quit")
	if m.showTrash {
		help = "r:restore  d:purge  E:empty trash  ?:help  q:" + m.tr.T("help.quit")
	}
	if m.message != "" {
		help = m.message
	}
	return m.theme.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "Add Note"
	switch m.mode {
	case ModeEditNote:
		title = "Edit Note"
	case ModeAddTag:
		title = "New Tag"
	}

	if m.mode == ModeAddNote {
		if tagID := m.notes.SelectedTag(); tagID != "" {
			if name, ok := m.notes.TagName(tagID); ok {
				title = fmt.Sprintf("Add Note to #%s", name)
			}
		}
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += m.theme.Help.Render("Enter:save  Esc:cancel")

	return m.theme.Modal.Render(content)
}

func (m Model) renderConfirmModal() string {
	note, _ := m.notes.NoteByID(m.purgeID)

	content := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Danger).Render("⚠ "+m.tr.T("trash.title")) + "\n\n"
	content += truncate(note.Title, 40) + "\n\n"
	content += m.tr.T("confirm.purge") + "\n\n"
	content += m.theme.Help.Render("y:delete  any other key:cancel")

	return m.theme.Modal.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│                          │
│  Notes                   │
│  ─────                   │
│  a      Add note         │
│  e      Edit title       │
│  p      Toggle pin       │
│  s      Toggle star      │
│  c      Cycle color      │
│  d      Trash / purge    │
│  /      Search           │
│                          │
│  Trash                   │
│  ─────                   │
│  r      Restore          │
│  E      Empty trash      │
│                          │
│  Other                   │
│  ─────                   │
│  t      New tag          │
│  ?      Toggle help      │
│  q      Quit             │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
