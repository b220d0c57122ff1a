// Package tui is an interactive terminal version of the calculators.
// Every keystroke updates the form and recomputes the results.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
)

// Investment field keys. They live outside the share-link key table.
const (
	keyInitial = "initial"
	keyMonthly = "monthly"
	keyYears   = "years"
	keyRate    = "rate"
)

type field struct {
	key   string
	label string
	input textinput.Model
}

// Model is the whole TUI state
type Model struct {
	scene  Scene
	width  int
	height int

	engine *calculation.Engine
	form   form.Form
	fields map[Scene][]*field
	focus  int

	clt        domain.CalculationResult
	pj         domain.CalculationResult
	comparison domain.ComparisonResult
	investment domain.InvestmentResult

	history       form.History
	historyPath   string
	historyCursor int
	shareBase     string

	keys     keyMap
	help     help.Model
	status   string
	err      error
	quitting bool
}

// Options configures NewModel
type Options struct {
	Engine      *calculation.Engine
	Form        form.Form
	HistoryPath string // empty disables persistence
	ShareBase   string
}

// NewModel creates the TUI with opts.Form pre-filled
func NewModel(opts Options) Model {
	m := Model{
		scene:       SceneCLT,
		width:       100,
		height:      30,
		engine:      opts.Engine,
		form:        opts.Form,
		historyPath: opts.HistoryPath,
		shareBase:   opts.ShareBase,
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	if m.engine == nil {
		m.engine = calculation.NewEngine()
	}
	m.buildFields()
	m.focusField(0)
	m.recalculate()
	return m
}

func (m *Model) buildFields() {
	cltField := func(key, label string) *field { return m.formField(key, label) }
	m.fields = map[Scene][]*field{
		SceneCLT: {
			cltField("gs", "Salário bruto"),
			cltField("va", "Vale-refeição"),
			cltField("vt", "Vale-transporte"),
			cltField("ps", "Plano de saúde"),
			cltField("ob", "Outros benefícios"),
			cltField("tc", "Anos de empresa"),
			cltField("plr", "PLR anual"),
			cltField("oe", "Outras despesas"),
			cltField("dc", "Dependentes"),
		},
		ScenePJ: {
			m.formField("fp", "Faturamento mensal"),
			m.formField("pl", "Pró-labore"),
			m.formField("ct", "Contabilidade"),
			m.formField("f12", "Faturamento 12 meses"),
		},
		SceneInvestment: {
			newField(keyInitial, "Depósito inicial", "10000"),
			newField(keyMonthly, "Aporte mensal", "500"),
			newField(keyYears, "Prazo (anos)", "10"),
			newField(keyRate, "Juros (% a.a.)", "5"),
		},
	}
}

func newField(key, label, value string) *field {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "0"
	in.CharLimit = 20
	in.Width = 16
	in.SetValue(value)
	return &field{key: key, label: label, input: in}
}

func (m *Model) formField(key, label string) *field {
	k, _ := form.LookupKey(key)
	return newField(key, label, k.Field(&m.form).Raw)
}

// Init starts the cursor and loads the history
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadHistoryCmd(m.historyPath))
}

func (m *Model) sceneFields() []*field {
	return m.fields[m.scene]
}

func (m *Model) focusField(i int) tea.Cmd {
	fields := m.sceneFields()
	for _, f := range fields {
		f.input.Blur()
	}
	if len(fields) == 0 {
		m.focus = 0
		return nil
	}
	m.focus = (i%len(fields) + len(fields)) % len(fields)
	return fields[m.focus].input.Focus()
}

// recalculate runs every calculator from the current inputs
func (m *Model) recalculate() {
	clt, pj := m.form.CLTInput(), m.form.PJInput()
	m.comparison = m.engine.Compare(clt, pj)
	m.clt = m.comparison.CLT
	m.pj = m.comparison.PJ
	m.investment = calculation.CalculateInvestmentResults(m.investmentInput())
}

func (m *Model) investmentInput() domain.InvestmentInput {
	in := domain.InvestmentInput{PeriodType: domain.PeriodYears}
	for _, f := range m.fields[SceneInvestment] {
		d, ok := form.ParseDecimal(f.input.Value())
		if !ok || d.IsNegative() {
			continue
		}
		switch f.key {
		case keyInitial:
			in.InitialDeposit = d
		case keyMonthly:
			in.MonthlyContribution = d
		case keyYears:
			in.Period = int(d.IntPart())
		case keyRate:
			in.InterestRate = d
		}
	}
	if in.Period > 100 {
		in.Period = 100
	}
	return in
}

// Link is the share link of the current form
func (m Model) Link() string {
	return m.form.Link(m.shareBase)
}

// Form returns the current form state
func (m Model) Form() form.Form {
	return m.form
}

func loadHistoryCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		h, err := form.LoadHistory(path)
		return HistoryLoadedMsg{History: h, Err: err}
	}
}

func saveHistoryCmd(path string, h form.History) tea.Cmd {
	if path == "" {
		return nil
	}
	entries := append([]string(nil), h.Entries...)
	return func() tea.Msg {
		return HistorySavedMsg{Err: form.SaveHistory(path, &form.History{Entries: entries})}
	}
}
