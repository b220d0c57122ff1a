package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	CLT        key.Binding
	PJ         key.Binding
	Compare    key.Binding
	Investment key.Binding
	History    key.Binding
	Toggle     key.Binding
	Annex      key.Binding
	Save       key.Binding
	Load       key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "próximo campo")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "campo anterior")),
		CLT:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "CLT")),
		PJ:         key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "PJ")),
		Compare:    key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "comparar")),
		Investment: key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "investimentos")),
		History:    key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "histórico")),
		Toggle:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "FGTS / exportação")),
		Annex:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "anexo")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "salvar link")),
		Load:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir")),
		Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "limpar")),
		Help:       key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "ajuda")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "sair")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.CLT, k.PJ, k.Compare, k.Investment, k.Save, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Toggle, k.Annex},
		{k.CLT, k.PJ, k.Compare, k.Investment, k.History},
		{k.Save, k.Load, k.Reset, k.Help, k.Quit},
	}
}
