package console

import (
	"errors"
	"io/fs"

	"dekarrin/replaykk/internal/persist"
)

// HistoryKey is the name of the document that shell history is kept in,
// within the store's base directory.
const HistoryKey = "history"

// historyDoc saves liner history as a document in a persist.Store.
type historyDoc struct {
	docs persist.Store
	key  string
}

func newHistoryDoc(baseDir string) *historyDoc {
	return &historyDoc{
		docs: persist.NewFilesystemStore(baseDir, nil),
		key:  HistoryKey,
	}
}

// loadHistory reads saved history into the prompt. A missing history document
// is not an error. On any other failure history saving is turned off for the
// rest of the session.
func (state *consoleState) loadHistory() {
	if state.history == nil {
		return
	}
	doc, err := state.history.docs.Open(state.history.key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		state.out.Warn("couldn't open history; command history will be limited to this session: %v", err)
		state.history = nil
		return
	}
	defer doc.Close()

	if _, err := state.prompt.ReadHistory(doc); err != nil {
		state.out.Warn("couldn't read history: %v", err)
	}
}

// writeHistory replaces the saved history with the prompt's current history.
func (state *consoleState) writeHistory() {
	if state.history == nil {
		return
	}
	doc, err := state.history.docs.Create(state.history.key)
	if err != nil {
		state.out.Warn("couldn't save history; command history will be limited to this session: %v", err)
		state.history = nil
		return
	}

	_, writeErr := state.prompt.WriteHistory(doc)
	closeErr := doc.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		state.out.Warn("couldn't write history; command history will be limited to this session: %v", writeErr)
		state.history = nil
	}
}
