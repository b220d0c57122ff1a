package tui

import "github.com/devnagringa/calculadoras/internal/form"

// Scene is one screen of the TUI
type Scene int

const (
	SceneCLT Scene = iota
	ScenePJ
	SceneCompare
	SceneInvestment
	SceneHistory
)

var sceneNames = []string{"CLT", "PJ", "Comparar", "Investimentos", "Histórico"}

func (s Scene) String() string {
	if int(s) < 0 || int(s) >= len(sceneNames) {
		return "?"
	}
	return sceneNames[s]
}

// NavigateMsg switches scene
type NavigateMsg struct {
	Scene Scene
}

// HistoryLoadedMsg carries the history read at startup
type HistoryLoadedMsg struct {
	History *form.History
	Err     error
}

// HistorySavedMsg reports the result of persisting the history
type HistorySavedMsg struct {
	Err error
}
