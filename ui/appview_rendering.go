package ui

import (
	"fmt"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/mattn/go-runewidth"

	"tabla/agent"
	"tabla/storage"
)

func newAnswerViewport(width, height int) viewport.Model {
	vp := viewport.New(width-2, answerViewportHeight(height))
	return vp
}

func answerViewportHeight(height int) int {
	// Room for the title, status bar and footer.
	h := height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (a AppView) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.showHistory {
		return a.renderHistoryOverlay()
	}

	switch a.state {
	case statePicker:
		return a.renderPickerView()
	case stateAsk:
		return a.renderAskView()
	case stateRunning:
		return a.renderRunningView()
	case stateAnswer:
		return a.renderAnswerView()
	}
	return ""
}

func (a AppView) renderPickerView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tabla · select a CSV file"))
	b.WriteString("\n\n")
	b.WriteString(a.picker.View())
	b.WriteString("\n")
	if a.loadErr != "" {
		b.WriteString(ErrorStyle.Render(a.loadErr))
		b.WriteString("\n")
	}
	b.WriteString(FormatFooter("enter", "Open", "ctrl+h", "History", "esc", "Quit"))
	return b.String()
}

func (a AppView) renderAskView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tabla · " + a.dataset))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(a.truncateLine(a.tablePre)))
	b.WriteString("\n\n")
	b.WriteString(a.questionInput.View())
	b.WriteString("\n\n")
	b.WriteString(FormatFooter("enter", "Ask", "ctrl+h", "History", "esc", "Back", "ctrl+c", "Quit"))
	return b.String()
}

func (a AppView) renderRunningView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tabla · " + a.dataset))
	b.WriteString("\n")
	b.WriteString(QuestionStyle.Render("> " + a.question))
	b.WriteString("\n\n")
	b.WriteString(a.loadingSpinner.View())
	b.WriteString(DimStyle.Render(" analyzing..."))
	b.WriteString("\n\n")
	b.WriteString(a.renderTranscript(a.steps))
	b.WriteString("\n")
	b.WriteString(FormatFooter("esc", "Cancel", "ctrl+c", "Quit"))
	return b.String()
}

func (a AppView) renderAnswerView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tabla · " + a.dataset))
	b.WriteString("\n")
	b.WriteString(QuestionStyle.Render("> " + a.question))
	b.WriteString("\n")
	b.WriteString(a.answerView.View())
	b.WriteString("\n")
	if a.copiedFlash {
		b.WriteString(HighlightStyle.Render("Answer copied to clipboard"))
		b.WriteString("\n")
	}
	b.WriteString(FormatFooter("n", "New question", "o", "Open file", "y", "Copy", "ctrl+h", "History", "q", "Quit"))
	return b.String()
}

// renderAnswer produces the viewport content for the completed turn.
func (a AppView) renderAnswer() string {
	if a.answer == nil {
		return ""
	}
	var b strings.Builder

	if a.answer.StepLimitHit {
		b.WriteString(StepErrStyle.Render("(step limit reached, answer is best-effort)"))
		b.WriteString("\n\n")
	}

	rendered := markdown.Render(a.answer.Text, a.answerView.Width-2, 2)
	b.Write(rendered)

	if a.answer.ChartPath != "" {
		b.WriteString("\n")
		b.WriteString(HighlightStyle.Render("Chart saved: " + a.answer.ChartPath))
		b.WriteString("\n")
	}

	if len(a.answer.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(DimStyle.Render(fmt.Sprintf("%d tool steps:", len(a.answer.Steps))))
		b.WriteString("\n")
		b.WriteString(a.renderTranscript(a.answer.Steps))
	}

	return b.String()
}

func (a AppView) renderTranscript(steps []agent.Step) string {
	var b strings.Builder
	for i, s := range steps {
		line := fmt.Sprintf("  %d. %s", i+1, agent.SummarizeStep(s))
		if s.Result.OK {
			b.WriteString(StepStyle.Render(a.truncateLine(line)))
		} else {
			b.WriteString(StepErrStyle.Render(a.truncateLine(line)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStoredTurn formats a turn recalled from history.
func (a AppView) renderStoredTurn(t storage.Turn) string {
	var b strings.Builder
	b.WriteString(DimStyle.Render(fmt.Sprintf("%s · %s · %d steps", t.Dataset, t.CreatedAt.Format("2006-01-02 15:04"), t.Steps)))
	b.WriteString("\n\n")
	rendered := markdown.Render(t.Answer, a.answerView.Width-2, 2)
	b.Write(rendered)
	if t.ChartPath != "" {
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("Chart was saved to: " + t.ChartPath))
	}
	return b.String()
}

func (a AppView) renderHistoryOverlay() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("tabla · history"))
	b.WriteString("\n\n")
	b.WriteString(a.historyInput.View())
	b.WriteString("\n\n")

	if len(a.historyMatches) == 0 {
		b.WriteString(DimStyle.Render("  no matching turns"))
		b.WriteString("\n")
	}

	visible := a.height - 10
	if visible < 1 {
		visible = 1
	}
	for i, m := range a.historyMatches {
		if i >= visible {
			b.WriteString(DimStyle.Render(fmt.Sprintf("  (%d more)", len(a.historyMatches)-visible)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%s  %s", m.Turn.CreatedAt.Format("01-02 15:04"), m.Turn.Question)
		line = a.truncateLine(line)
		if i == a.selectedHistory {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatFooter("enter", "View", "up/down", "Navigate", "esc", "Close"))
	return b.String()
}

func (a AppView) truncateLine(s string) string {
	w := a.width - 4
	if w < 10 {
		w = 10
	}
	return runewidth.Truncate(s, w, "…")
}
