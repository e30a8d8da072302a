package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"tabla/table"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.questionInput.SetWidth(msg.Width - 4)
		if !a.ready {
			a.answerView = newAnswerViewport(msg.Width, msg.Height)
			a.ready = true
		} else {
			a.answerView.Width = msg.Width - 2
			a.answerView.Height = answerViewportHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if a.showHistory {
			return a.updateHistoryKeys(msg)
		}
		switch a.state {
		case statePicker:
			return a.updatePickerKeys(msg)
		case stateAsk:
			return a.updateAskKeys(msg)
		case stateRunning:
			switch msg.String() {
			case "ctrl+c":
				return a, tea.Quit
			case "esc":
				if a.turnCancel != nil {
					a.turnCancel()
				}
				return a, nil
			}
			return a, nil
		case stateAnswer:
			return a.updateAnswerKeys(msg)
		}

	case tableLoadedMsg:
		a.table = msg.Table
		a.dataset = datasetName(msg.Path)
		a.loadErr = ""
		a.tablePre = summarizeSchema(msg.Table)
		a.state = stateAsk
		a.questionInput.Reset()
		return a, a.questionInput.Focus()

	case tableErrorMsg:
		a.loadErr = describeLoadError(msg.Err)
		return a, nil

	case turnStepMsg:
		a.steps = append(a.steps, msg.Step)
		return a, waitTurnEvent(a.events)

	case turnDoneMsg:
		a.answer = msg.Answer
		a.turnErr = ""
		a.state = stateAnswer
		if a.ready {
			a.answerView.SetContent(a.renderAnswer())
			a.answerView.GotoTop()
		}
		return a, a.saveTurnCmd(msg.Answer)

	case turnErrorMsg:
		if errors.Is(msg.Err, context.Canceled) {
			// User cancelled; go straight back to the question box.
			a.state = stateAsk
			a.questionInput.Reset()
			return a, a.questionInput.Focus()
		}
		a.turnErr = msg.Err.Error()
		a.answer = nil
		a.state = stateAnswer
		if a.ready {
			a.answerView.SetContent(ErrorStyle.Render("Turn failed: " + a.turnErr))
			a.answerView.GotoTop()
		}
		return a, nil

	case historyListMsg:
		a.historyMatches = msg.Matches
		if a.selectedHistory >= len(a.historyMatches) {
			a.selectedHistory = 0
		}
		return a, nil
	}

	return a.updateComponents(msg)
}

func (a AppView) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch a.state {
	case statePicker:
		a.picker, cmd = a.picker.Update(msg)
		cmds = append(cmds, cmd)
		if ok, path := a.picker.DidSelectFile(msg); ok {
			cmds = append(cmds, loadTableCmd(path))
		}
	case stateAsk:
		a.questionInput, cmd = a.questionInput.Update(msg)
		cmds = append(cmds, cmd)
	case stateRunning:
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
	case stateAnswer:
		a.answerView, cmd = a.answerView.Update(msg)
		cmds = append(cmds, cmd)
	}

	if a.showHistory {
		a.historyInput, cmd = a.historyInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a AppView) updatePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return a, tea.Quit
	case "ctrl+h":
		return a.openHistory()
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if ok, path := a.picker.DidSelectFile(msg); ok {
		return a, tea.Batch(cmd, loadTableCmd(path))
	}
	return a, cmd
}

func (a AppView) updateAskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc":
		// Back to the picker to load a different file.
		a.state = statePicker
		a.table = nil
		a.questionInput.Blur()
		return a, a.picker.Init()
	case "ctrl+h":
		return a.openHistory()
	case "enter":
		question := strings.TrimSpace(a.questionInput.Value())
		if question == "" {
			return a, nil
		}
		a.question = question
		a.steps = nil
		a.answer = nil
		a.turnErr = ""
		a.state = stateRunning
		a.questionInput.Blur()
		return a, a.startTurnCmd(question)
	}
	var cmd tea.Cmd
	a.questionInput, cmd = a.questionInput.Update(msg)
	return a, cmd
}

func (a AppView) updateAnswerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "esc", "n":
		// Next question on the same table.
		a.state = stateAsk
		a.copiedFlash = false
		a.questionInput.Reset()
		return a, a.questionInput.Focus()
	case "o":
		// Load a different file.
		a.state = statePicker
		a.table = nil
		a.copiedFlash = false
		return a, a.picker.Init()
	case "ctrl+h":
		return a.openHistory()
	case "y":
		if a.answer != nil {
			if err := clipboard.WriteAll(a.answer.Text); err == nil {
				a.copiedFlash = true
			}
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.answerView, cmd = a.answerView.Update(msg)
	return a, cmd
}

func (a AppView) openHistory() (tea.Model, tea.Cmd) {
	a.showHistory = true
	a.selectedHistory = 0
	a.historyInput.Reset()
	return a, tea.Batch(a.historyInput.Focus(), a.searchHistoryCmd(""))
}

func (a AppView) updateHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "ctrl+h":
		a.showHistory = false
		a.historyInput.Blur()
		return a, nil
	case "up", "ctrl+k":
		if a.selectedHistory > 0 {
			a.selectedHistory--
		}
		return a, nil
	case "down", "ctrl+j":
		if a.selectedHistory < len(a.historyMatches)-1 {
			a.selectedHistory++
		}
		return a, nil
	case "enter":
		if a.selectedHistory < len(a.historyMatches) {
			turn := a.historyMatches[a.selectedHistory].Turn
			a.showHistory = false
			a.historyInput.Blur()
			a.answer = nil
			a.turnErr = ""
			a.question = turn.Question
			a.state = stateAnswer
			if a.ready {
				a.answerView.SetContent(a.renderStoredTurn(turn))
				a.answerView.GotoTop()
			}
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.historyInput, cmd = a.historyInput.Update(msg)
	return a, tea.Batch(cmd, a.searchHistoryCmd(a.historyInput.Value()))
}

// summarizeSchema builds the one-line dataset banner.
func summarizeSchema(t *table.Table) string {
	names := t.ColumnNames()
	preview := strings.Join(names, ", ")
	return fmt.Sprintf("%d rows · %d columns: %s", t.NumRows(), t.NumCols(), preview)
}

// describeLoadError maps parse failures to user-facing text.
func describeLoadError(err error) string {
	return "Could not load file: " + err.Error()
}
