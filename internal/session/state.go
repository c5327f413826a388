// Package session holds the in-memory view-model behind the interactive UI:
// the input text or selected file, one in-flight flag per action, the last
// result of each action and a single error slot.
//
// State is not safe for concurrent use. The UI mutates it only from its
// update loop, in response to key events or to the completion message of a
// pending gateway call.
package session

import (
	"fmt"
	"strings"

	"cadet/internal/textfile"
	"cadet/internal/types"
)

// File is the currently selected input file.
type File struct {
	Path     string
	Name     string
	MIMEType string
}

// State is the UI view-model. Nothing in it is persisted.
type State struct {
	InputText string
	File      *File

	Translating      bool
	GeneratingImage  bool
	GeneratingPrompt bool

	Err string

	Translation *types.TranslationResult
	Image       *types.ImageResult
	Prompt      string
	Copied      bool
}

// New returns an idle, empty state.
func New() *State { return &State{} }

// =============================================================================
// INPUT
// =============================================================================

// EditText replaces the input text. Typing drops any selected file and the
// results computed for the previous input.
func (s *State) EditText(text string) {
	if text == s.InputText && s.File == nil {
		return
	}
	s.File = nil
	s.InputText = text
	s.clearResults()
	s.Err = ""
}

// SelectFile validates a candidate file. A rejected file sets the error and
// leaves the input untouched. An accepted file becomes the selection and
// replaces the typed text, which stays empty until the caller reads the file
// and reports back through FileLoaded or FileLoadFailed. Results and error
// are cleared.
func (s *State) SelectFile(name, path, mimeType string) bool {
	if !textfile.Accept(name, mimeType) {
		s.Err = MsgRejectedFile
		return false
	}
	s.File = &File{Path: path, Name: name, MIMEType: mimeType}
	s.InputText = ""
	s.clearResults()
	s.Err = ""
	return true
}

// FileLoaded stores the decoded contents of the selected file. Completions
// for a file that is no longer selected are ignored.
func (s *State) FileLoaded(path, text string) {
	if !s.isSelected(path) {
		return
	}
	s.InputText = text
}

// FileLoadFailed reports a read or decode failure for the selected file.
func (s *State) FileLoadFailed(path string) {
	if !s.isSelected(path) {
		return
	}
	s.File = nil
	s.InputText = ""
	s.Err = MsgReadFailed
}

// RemoveFile drops the selected file together with its text and results.
func (s *State) RemoveFile() {
	s.File = nil
	s.InputText = ""
	s.Err = ""
	s.clearResults()
}

// InputLocked reports whether the text box must refuse edits.
func (s *State) InputLocked() bool {
	return s.File != nil || s.Busy()
}

func (s *State) isSelected(path string) bool {
	return s.File != nil && s.File.Path == path
}

// =============================================================================
// ACTIONS
// =============================================================================

// Busy reports whether any action is in flight.
func (s *State) Busy() bool {
	return s.Translating || s.GeneratingImage || s.GeneratingPrompt
}

// InFlight reports the in-flight flag of one action.
func (s *State) InFlight(a types.Action) bool {
	switch a {
	case types.ActionTranslate:
		return s.Translating
	case types.ActionVisualExplanation:
		return s.GeneratingImage
	case types.ActionInfographicPrompt:
		return s.GeneratingPrompt
	}
	return false
}

// CanTrigger reports whether action a may start: the input must not be
// blank and a must not already be in flight.
func (s *State) CanTrigger(a types.Action) bool {
	return a.Valid() && strings.TrimSpace(s.InputText) != "" && !s.InFlight(a)
}

// Start marks a as in flight and clears the error and stale results.
// Translating clears every result; the other actions clear only their own.
// It returns false, changing nothing, when CanTrigger is false.
func (s *State) Start(a types.Action) bool {
	if !s.CanTrigger(a) {
		return false
	}
	s.Err = ""
	switch a {
	case types.ActionTranslate:
		s.Translating = true
		s.clearResults()
	case types.ActionVisualExplanation:
		s.GeneratingImage = true
		s.Image = nil
	case types.ActionInfographicPrompt:
		s.GeneratingPrompt = true
		s.Prompt = ""
		s.Copied = false
	}
	return true
}

// CompleteTranslate records the outcome of a translate call. A result
// carrying an error is shown as the error, never as content.
func (s *State) CompleteTranslate(res *types.TranslationResult, err error) {
	s.Translating = false
	switch {
	case err != nil:
		s.Err = fmt.Sprintf(MsgTranslateFailed, err.Error())
	case res == nil:
		s.Err = fmt.Sprintf(MsgTranslateFailed, "respuesta vacía")
	case res.HasError():
		s.Err = strings.TrimSpace(res.Error)
	default:
		s.Translation = res
	}
}

// CompleteImage records the outcome of a visual_explanation call.
func (s *State) CompleteImage(img *types.ImageResult, err error) {
	s.GeneratingImage = false
	switch {
	case err != nil:
		s.Err = MsgImageFailed
	case img == nil || len(img.Data) == 0:
		s.Err = MsgNoImage
	default:
		s.Image = img
	}
}

// CompletePrompt records the outcome of an infographic_prompt call.
func (s *State) CompletePrompt(prompt string, err error) {
	s.GeneratingPrompt = false
	switch {
	case err != nil:
		s.Err = MsgPromptFailed
	case strings.TrimSpace(prompt) == "":
		s.Err = MsgNoPrompt
	default:
		s.Prompt = prompt
	}
}

// =============================================================================
// CLIPBOARD
// =============================================================================

// RejectPaste reports a paste the text box cannot hold. The input is kept.
func (s *State) RejectPaste() {
	s.Err = MsgPasteTooLong
}

// MarkCopied flags the prompt as copied. It is a no-op without a prompt.
func (s *State) MarkCopied() bool {
	if s.Prompt == "" {
		return false
	}
	s.Copied = true
	return true
}

// ResetCopied clears the copied indicator.
func (s *State) ResetCopied() { s.Copied = false }

func (s *State) clearResults() {
	s.Translation = nil
	s.Image = nil
	s.Prompt = ""
	s.Copied = false
}
