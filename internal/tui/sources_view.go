// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
	"github.com/adaway/adaway/internal/model"
)

type viewMode int

const (
	modeList viewMode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type sourcesModel struct {
	ctx   context.Context
	store db.Store

	// Data
	sources []model.HostsSource
	lines   []model.HostsSource // sources matching the filter

	// State
	cursor      int
	filter      string
	isFiltering bool
	mode        viewMode
	input       textinput.Model
	target      *model.HostsSource // row being edited or deleted
	status      string
	err         error
	width       int
}

func newSourcesModel(ctx context.Context, store db.Store) sourcesModel {
	m := sourcesModel{ctx: ctx, store: store, width: 80, input: newURLInput()}
	m.reload()
	return m
}

func newURLInput() textinput.Model {
	t := textinput.New()
	t.Cursor.Style = selectedItemStyle
	t.Placeholder = "https://example.com/hosts.txt"
	t.CharLimit = 2048
	t.Width = 60
	return t
}

// reload fetches the sources from the store and reapplies the filter.
func (m *sourcesModel) reload() {
	all, err := m.store.ListAll(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.sources = all
	m.rebuildLines()
}

func (m *sourcesModel) rebuildLines() {
	m.lines = db.FilterSourcesByTokens(m.sources, db.TokenizeSearchQuery(m.filter))
	if m.cursor >= len(m.lines) {
		m.cursor = max(len(m.lines)-1, 0)
	}
}

func (m sourcesModel) selected() (model.HostsSource, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return model.HostsSource{}, false
	}
	return m.lines[m.cursor], true
}

// moveTo puts the cursor on the row with id, if it is visible.
func (m *sourcesModel) moveTo(id int64) {
	for i, src := range m.lines {
		if src.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m sourcesModel) Init() tea.Cmd {
	return nil
}

func (m sourcesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		if m.isFiltering {
			return m.updateFilter(msg), nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m sourcesModel) updateFilter(msg tea.KeyMsg) sourcesModel {
	switch msg.Type {
	case tea.KeyEsc:
		m.isFiltering = false
		m.filter = ""
	case tea.KeyEnter:
		m.isFiltering = false
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	}
	m.rebuildLines()
	return m
}

func (m sourcesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		if m.filter != "" {
			m.filter = ""
			m.rebuildLines()
			return m, nil
		}
		return m, tea.Quit
	case "/":
		m.isFiltering = true
		m.filter = ""
		m.rebuildLines()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}
	case " ", "enter":
		src, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.SetEnabled(m.ctx, src.ID, !src.Enabled); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		if src.Enabled {
			m.status = i18n.T("sources.disabled", src.ID)
		} else {
			m.status = i18n.T("sources.enabled", src.ID)
		}
		m.reload()
	case "a":
		m.mode = modeAdd
		m.target = nil
		m.input.SetValue("")
		m.err = nil
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case "e":
		src, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.target = &src
		m.input.SetValue(src.URL)
		m.input.CursorEnd()
		m.err = nil
		return m, tea.Batch(m.input.Focus(), textinput.Blink)
	case "d", "delete":
		src, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.target = &src
	case "y":
		m.copyEnabled()
	case "r":
		m.err = nil
		m.reload()
	}
	return m, nil
}

func (m sourcesModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeList
		m.target = nil
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(m.input.Value())
		if err := model.ValidateURL(raw); err != nil {
			m.err = errors.New(i18n.T("sources.invalid_url", raw))
			return m, nil
		}
		var id int64
		if m.mode == modeAdd {
			newID, err := m.store.Insert(m.ctx, raw)
			if err != nil {
				m.err = err
				return m, nil
			}
			id = newID
			m.status = i18n.T("sources.added", id, raw)
		} else {
			id = m.target.ID
			if err := m.store.Update(m.ctx, id, raw); err != nil {
				m.err = err
				return m, nil
			}
			m.status = i18n.T("sources.updated", id)
		}
		m.err = nil
		m.mode = modeList
		m.target = nil
		m.input.Blur()
		m.reload()
		m.moveTo(id)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m sourcesModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.target
	m.mode = modeList
	m.target = nil
	switch msg.String() {
	case "y", "Y", "j", "J":
		if err := m.store.Delete(m.ctx, target.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = i18n.T("sources.deleted", target.ID)
		m.reload()
	}
	return m, nil
}

func (m *sourcesModel) copyEnabled() {
	urls, err := m.store.ListEnabledURLs(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	if err := copyToClipboard(strings.Join(urls, "\n")); err != nil {
		m.err = errors.New(i18n.T("tui.copy_failed", err))
		return
	}
	m.err = nil
	m.status = i18n.T("tui.copied", len(urls))
}

func (m sourcesModel) View() string {
	title := mainTitleStyle.Render("🛡  " + i18n.T("tui.title"))

	var listItems []string
	if len(m.lines) == 0 {
		listItems = append(listItems, helpStyle.Render(i18n.T("tui.empty")))
	}
	for i, src := range m.lines {
		check := "[ ]"
		url := inactiveItemStyle.Render(src.URL)
		if src.Enabled {
			check = "[x]"
			url = src.URL
		}
		line := fmt.Sprintf("%s %s", check, url)
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+line))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+line))
		}
	}
	paneWidth := max(m.width-8, 40)
	listPane := paneStyle.Width(paneWidth).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))

	parts := []string{title, listPane}
	switch m.mode {
	case modeAdd:
		parts = append(parts, i18n.T("tui.add_prompt"), m.input.View())
	case modeEdit:
		parts = append(parts, i18n.T("tui.edit_prompt"), m.input.View())
	case modeConfirmDelete:
		parts = append(parts, specialStyle.Render(i18n.T("tui.confirm_delete", m.target.URL)))
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(i18n.T("tui.error", m.err)))
	} else if m.status != "" {
		parts = append(parts, successStyle.Render(m.status))
	}

	var filterStatus string
	if m.isFiltering {
		filterStatus = statusMessageStyle.Render(i18n.T("tui.filtering", m.filter))
	} else if m.filter != "" {
		filterStatus = i18n.T("tui.filter_active", m.filter)
	} else {
		filterStatus = i18n.T("tui.filter_hint")
	}
	parts = append(parts, "", footerStyle.Render(AlignFooter(i18n.T("tui.footer"), filterStatus, paneWidth)))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
