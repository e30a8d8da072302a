// Package ui implements the terminal interface: pick a CSV file, ask
// questions about it, watch the tool transcript live, and read Markdown
// answers. Built on bubbletea with bubbles components.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabla/agent"
	"tabla/chart"
	"tabla/config"
	"tabla/model"
	"tabla/storage"
	"tabla/table"
)

type viewState int

const (
	statePicker viewState = iota
	stateAsk
	stateRunning
	stateAnswer
)

type AppView struct {
	settings *config.Settings
	provider model.Provider
	turns    *storage.TurnStorage
	renderer *chart.Renderer

	// Loaded dataset
	table    *table.Table
	dataset  string // base name of the loaded file
	loadErr  string
	tablePre string // cached schema summary shown above the question box

	state viewState

	// UI components
	picker         filepicker.Model
	questionInput  textarea.Model
	answerView     viewport.Model
	loadingSpinner spinner.Model

	// Running turn state
	question   string
	steps      []agent.Step
	events     chan tea.Msg
	turnCancel context.CancelFunc

	// Last completed turn
	answer  *agent.FinalAnswer
	turnErr string

	// History overlay
	showHistory     bool
	historyInput    textinput.Model
	historyMatches  []storage.TurnMatch
	selectedHistory int

	copiedFlash bool

	width  int
	height int
	ready  bool
}

// NewAppView wires the top-level view. The provider and turn storage are
// shared for the program's lifetime; the table arrives via the file picker.
func NewAppView(settings *config.Settings, p model.Provider, turns *storage.TurnStorage) (*AppView, error) {
	renderer, err := chart.NewRenderer(config.GetChartDir())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare chart directory: %w", err)
	}

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	fp.Height = 12
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowPermissions = false
	fp.ShowSize = true
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	} else {
		fp.CurrentDirectory = config.GetHomeDir()
	}
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(successColor)

	ta := textarea.New()
	ta.Placeholder = "Ask a question about the data..."
	ta.CharLimit = 2000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	hi := textinput.New()
	hi.Placeholder = "Search past questions..."
	hi.CharLimit = 200

	return &AppView{
		settings:       settings,
		provider:       p,
		turns:          turns,
		renderer:       renderer,
		state:          statePicker,
		picker:         fp,
		questionInput:  ta,
		loadingSpinner: sp,
		historyInput:   hi,
	}, nil
}

func (a AppView) Init() tea.Cmd {
	return a.picker.Init()
}

// loadTableCmd parses the selected file off the Update loop.
func loadTableCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return tableErrorMsg{Path: path, Err: err}
		}
		defer f.Close()

		t, err := table.LoadCSV(f)
		if err != nil {
			return tableErrorMsg{Path: path, Err: err}
		}
		return tableLoadedMsg{Path: path, Table: t}
	}
}

// startTurnCmd launches the agent loop in a goroutine. Steps and the final
// outcome arrive through the events channel; waitTurnEvent relays them.
func (a *AppView) startTurnCmd(question string) tea.Cmd {
	events := make(chan tea.Msg, 16)
	a.events = events

	ctx, cancel := context.WithCancel(context.Background())
	a.turnCancel = cancel

	runner := agent.NewRunner(a.provider, a.table, a.renderer, agent.Config{
		MaxSteps:      a.settings.Agent.MaxSteps,
		OracleTimeout: time.Duration(a.settings.Agent.TimeoutSeconds) * time.Second,
		OnStep: func(s agent.Step) {
			events <- turnStepMsg{Step: s}
		},
		Debug: config.DebugLog,
	})

	go func() {
		answer, err := runner.Turn(ctx, question)
		if err != nil {
			events <- turnErrorMsg{Err: err}
		} else {
			events <- turnDoneMsg{Answer: answer}
		}
		close(events)
	}()

	return tea.Batch(a.loadingSpinner.Tick, waitTurnEvent(events))
}

// waitTurnEvent blocks for the next event from the running turn.
func waitTurnEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

// searchHistoryCmd runs a fuzzy search over stored turns.
func (a *AppView) searchHistoryCmd(query string) tea.Cmd {
	turns := a.turns
	return func() tea.Msg {
		matches, err := turns.SearchTurns(query)
		if err != nil {
			return historyListMsg{}
		}
		return historyListMsg{Matches: matches}
	}
}

// saveTurnCmd persists a completed turn. Failures are logged, not surfaced.
func (a *AppView) saveTurnCmd(answer *agent.FinalAnswer) tea.Cmd {
	turns := a.turns
	dataset := a.dataset
	question := a.question
	return func() tea.Msg {
		err := turns.Save(&storage.Turn{
			Dataset:      dataset,
			Question:     question,
			Answer:       answer.Text,
			ChartPath:    answer.ChartPath,
			Steps:        len(answer.Steps),
			StepLimitHit: answer.StepLimitHit,
		})
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("ui: failed to save turn: %v", err)
		}
		return nil
	}
}

func datasetName(path string) string {
	return filepath.Base(path)
}
