package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NavigateMsg:
		cmd := m.navigate(msg.Scene)
		return m, cmd

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if msg.History != nil {
			m.history = *msg.History
		}
		return m, nil

	case HistorySavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Link salvo no histórico"
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.CLT):
		return m, m.navigate(SceneCLT)
	case key.Matches(msg, m.keys.PJ):
		return m, m.navigate(ScenePJ)
	case key.Matches(msg, m.keys.Compare):
		return m, m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Investment):
		return m, m.navigate(SceneInvestment)
	case key.Matches(msg, m.keys.History):
		return m, m.navigate(SceneHistory)

	case m.scene == SceneHistory && key.Matches(msg, m.keys.Next):
		if m.historyCursor < len(m.history.Entries)-1 {
			m.historyCursor++
		}
		return m, nil
	case m.scene == SceneHistory && key.Matches(msg, m.keys.Prev):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil
	case m.scene == SceneHistory && key.Matches(msg, m.keys.Load):
		return m, m.loadHistoryEntry()

	case key.Matches(msg, m.keys.Next):
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.focusField(m.focus - 1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleFlag()
		return m, nil
	case key.Matches(msg, m.keys.Annex):
		if m.scene == ScenePJ {
			m.form.Annex = nextAnnex(m.form.Annex)
			m.recalculate()
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.saveLink()
	case key.Matches(msg, m.keys.Reset):
		m.setForm(form.Default())
		m.status = "Formulário limpo"
		return m, m.focusField(0)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused feeds msg to the focused input and recomputes when its
// text changed
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := m.sceneFields()
	if len(fields) == 0 {
		return m, nil
	}
	f := fields[m.focus]
	before := f.input.Value()

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	if f.input.Value() != before {
		if k, ok := form.LookupKey(f.key); ok {
			k.Field(&m.form).Set(f.input.Value())
		}
		m.status = ""
		m.recalculate()
	}
	return m, cmd
}

func (m *Model) navigate(scene Scene) tea.Cmd {
	if scene == m.scene {
		return nil
	}
	for _, f := range m.sceneFields() {
		f.input.Blur()
	}
	m.scene = scene
	return m.focusField(0)
}

func (m *Model) toggleFlag() {
	switch m.scene {
	case SceneCLT:
		m.form.IncludeFGTS = !m.form.IncludeFGTS
	case ScenePJ:
		m.form.IsExportService = !m.form.IsExportService
	default:
		return
	}
	m.recalculate()
}

func nextAnnex(a domain.AnnexSelection) domain.AnnexSelection {
	switch a {
	case domain.AnnexAuto:
		return domain.AnnexIII
	case domain.AnnexIII:
		return domain.AnnexV
	default:
		return domain.AnnexAuto
	}
}

func (m *Model) saveLink() tea.Cmd {
	query := m.form.Encode()
	if query == "" {
		m.status = "Preencha algum campo antes de salvar"
		return nil
	}
	m.history.Push(query)
	m.status = "Link salvo no histórico"
	return saveHistoryCmd(m.historyPath, m.history)
}

func (m *Model) loadHistoryEntry() tea.Cmd {
	if m.historyCursor >= len(m.history.Entries) {
		return nil
	}
	m.setForm(form.Decode(m.history.Entries[m.historyCursor]))
	m.status = "Cálculo carregado do histórico"
	return m.navigate(SceneCLT)
}

// setForm replaces the form and refreshes the inputs that mirror it
func (m *Model) setForm(f form.Form) {
	m.form = f
	for _, scene := range []Scene{SceneCLT, ScenePJ} {
		for _, fd := range m.fields[scene] {
			if k, ok := form.LookupKey(fd.key); ok {
				fd.input.SetValue(k.Field(&m.form).Raw)
			}
		}
	}
	m.recalculate()
}
