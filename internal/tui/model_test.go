package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
)

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(k tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: k}
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})

	assert.Equal(t, SceneCLT, m.scene)
	assert.True(t, m.clt.Total.IsZero())
	assert.Equal(t, form.DefaultShareBase, m.Link())
	assert.Equal(t, "94111.23", m.investment.FinalAmount.StringFixed(2))
}

func TestTypingRecalculates(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})

	m, _ = send(t, m, typeText("5"), typeText("0"), typeText("0"), typeText("0"))
	assert.Equal(t, "5000", m.form.GrossSalary.Raw)
	assert.Equal(t, "4155.55", m.clt.Total.StringFixed(2))
	assert.Contains(t, m.View(), "R$ 4.155,55")
	assert.Contains(t, m.Link(), "gs=5000")

	m, _ = send(t, m, keyMsg(tea.KeyBackspace))
	assert.Equal(t, "500", m.form.GrossSalary.Raw)
}

func TestInvalidInputKeepsLastValue(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})

	m, _ = send(t, m, typeText("2000"), typeText("x"))
	assert.Equal(t, "2000", m.form.GrossSalary.Raw)
	assert.Equal(t, "1842.77", m.clt.Total.StringFixed(2))
}

func TestFocusCycles(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})
	n := len(m.fields[SceneCLT])

	m, _ = send(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, 1, m.focus)

	m, _ = send(t, m, keyMsg(tea.KeyShiftTab), keyMsg(tea.KeyShiftTab))
	assert.Equal(t, n-1, m.focus)

	m, _ = send(t, m, typeText("2"))
	assert.Equal(t, "2", m.form.DependentsCount.Raw)
	assert.Empty(t, m.form.GrossSalary.Raw)
}

func TestToggles(t *testing.T) {
	m := NewModel(Options{Form: form.Decode("gs=5000&fp=20000&pl=1518")})

	m, _ = send(t, m, keyMsg(tea.KeyCtrlT))
	assert.True(t, m.form.IncludeFGTS)
	assert.Contains(t, m.Link(), "fgts=1")

	m, _ = send(t, m, keyMsg(tea.KeyF2))
	require.Equal(t, ScenePJ, m.scene)
	assert.Equal(t, "Anexo V", m.pj.Annex)

	m, _ = send(t, m, keyMsg(tea.KeyCtrlA))
	assert.Equal(t, domain.AnnexIII, m.form.Annex)
	assert.Equal(t, "Anexo III", m.pj.Annex)

	m, _ = send(t, m, keyMsg(tea.KeyCtrlA), keyMsg(tea.KeyCtrlA))
	assert.Equal(t, domain.AnnexAuto, m.form.Annex)

	m, _ = send(t, m, keyMsg(tea.KeyCtrlT))
	assert.True(t, m.form.IsExportService)
	assert.True(t, m.form.IncludeFGTS, "PJ toggle leaves FGTS alone")
}

func TestPrefilledFormShowsInInputs(t *testing.T) {
	m := NewModel(Options{Form: form.Decode("gs=5.000,00&fp=20000")})

	assert.Equal(t, "5.000,00", m.fields[SceneCLT][0].input.Value())
	assert.Equal(t, "20000", m.fields[ScenePJ][0].input.Value())
	assert.Equal(t, "4155.55", m.clt.Total.StringFixed(2))
}

func TestCompareScene(t *testing.T) {
	m := NewModel(Options{Form: form.Decode("gs=5000&fp=20000&pl=5600&ct=300")})

	m, _ = send(t, m, keyMsg(tea.KeyF3))
	view := m.View()
	assert.Contains(t, view, "PJ rende mais por mês")
	assert.Contains(t, view, "R$ 13.490,85")
}

func TestInvestmentScene(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})

	m, _ = send(t, m, keyMsg(tea.KeyF4))
	require.Equal(t, SceneInvestment, m.scene)

	// Clear the initial deposit
	for range "10000" {
		m, _ = send(t, m, keyMsg(tea.KeyBackspace))
	}
	assert.Equal(t, "60000.00", m.investment.TotalContributions.StringFixed(2))
	assert.True(t, m.investment.FinalAmount.GreaterThan(m.investment.TotalContributions))
	assert.Contains(t, m.View(), "Valor final")
}

func TestSaveAndLoadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	m := NewModel(Options{Form: form.Default(), HistoryPath: path})

	m, cmd := send(t, m, keyMsg(tea.KeyCtrlS))
	assert.Nil(t, cmd, "empty form is not saved")
	assert.Contains(t, m.status, "Preencha")

	m, cmd = send(t, m, typeText("7000"), keyMsg(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	assert.Equal(t, "Link salvo no histórico", m.status)

	saved, err := form.LoadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gs=7000"}, saved.Entries)

	fresh := NewModel(Options{Form: form.Default(), HistoryPath: path})
	fresh, _ = send(t, fresh, loadHistoryCmd(path)())
	require.Equal(t, []string{"gs=7000"}, fresh.history.Entries)

	fresh, _ = send(t, fresh, keyMsg(tea.KeyF5), keyMsg(tea.KeyEnter))
	assert.Equal(t, SceneCLT, fresh.scene)
	assert.Equal(t, "7000", fresh.form.GrossSalary.Raw)
	assert.Equal(t, "7000", fresh.fields[SceneCLT][0].input.Value())
}

func TestReset(t *testing.T) {
	m := NewModel(Options{Form: form.Decode("gs=5000&fgts=1")})

	m, _ = send(t, m, keyMsg(tea.KeyCtrlR))
	assert.Equal(t, form.Default(), m.form)
	assert.Empty(t, m.fields[SceneCLT][0].input.Value())
	assert.True(t, m.clt.Total.IsZero())
}

func TestInit(t *testing.T) {
	assert.NotNil(t, NewModel(Options{}).Init())
	assert.Nil(t, loadHistoryCmd(""))
	assert.Nil(t, saveHistoryCmd("", form.History{}))
}

func TestQuit(t *testing.T) {
	m := NewModel(Options{Form: form.Default()})

	m, cmd := send(t, m, keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}
