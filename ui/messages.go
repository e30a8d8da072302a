package ui

import (
	"tabla/agent"
	"tabla/storage"
	"tabla/table"
)

// tableLoadedMsg carries a successfully parsed table.
type tableLoadedMsg struct {
	Path  string
	Table *table.Table
}

// tableErrorMsg reports a load failure.
type tableErrorMsg struct {
	Path string
	Err  error
}

// turnStepMsg streams one executed transcript step while a turn runs.
type turnStepMsg struct {
	Step agent.Step
}

// turnDoneMsg delivers the final answer of a turn.
type turnDoneMsg struct {
	Answer *agent.FinalAnswer
}

// turnErrorMsg reports a turn that ended without an answer.
type turnErrorMsg struct {
	Err error
}

// historyListMsg carries history search results for the overlay.
type historyListMsg struct {
	Matches []storage.TurnMatch
}
