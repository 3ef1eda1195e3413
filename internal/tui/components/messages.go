package components

import "github.com/artpar/kvdraft/internal/history"

// RecordHistoryMsg asks for the draft's method and URL to be stored in the
// URL history.
type RecordHistoryMsg struct {
	Entry history.Entry
}

// HistoryRecordedMsg reports the outcome of a RecordHistoryMsg.
type HistoryRecordedMsg struct {
	ID  string
	Err error
}

// BackendErrorMsg carries an error message returned by a backend. It is
// shown formatted in the status bar.
type BackendErrorMsg struct {
	Message string
}
