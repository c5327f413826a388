package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cadet/internal/session"
	"cadet/internal/types"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pcu = "La PCU modula el flujo de combustible al GTM."

type fakeGateway struct {
	mu     sync.Mutex
	calls  map[types.Action]int
	res    *types.TranslationResult
	img    *types.ImageResult
	prompt string
	err    error
}

func (f *fakeGateway) record(a types.Action) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[types.Action]int{}
	}
	f.calls[a]++
}

func (f *fakeGateway) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeGateway) Translate(_ context.Context, _ string) (*types.TranslationResult, error) {
	f.record(types.ActionTranslate)
	return f.res, f.err
}

func (f *fakeGateway) VisualExplanation(_ context.Context, _ string) (*types.ImageResult, error) {
	f.record(types.ActionVisualExplanation)
	return f.img, f.err
}

func (f *fakeGateway) InfographicPrompt(_ context.Context, _ string) (string, error) {
	f.record(types.ActionInfographicPrompt)
	return f.prompt, f.err
}

func newTestModel(t *testing.T, gw *fakeGateway, copied *[]string) Model {
	t.Helper()
	m := New(Config{
		Gateway:  gw,
		ImageDir: t.TempDir(),
		StartDir: t.TempDir(),
		Copy: func(s string) error {
			if copied != nil {
				*copied = append(*copied, s)
			}
			return nil
		},
		Now: func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

// runCmd executes cmd and any batched commands, dropping spinner ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds every message produced by cmd back into m.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		m, _ = update(m, msg)
	}
	return m
}

func typeText(m Model, s string) Model {
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestEmptyInput_NoNetworkCall(t *testing.T) {
	gw := &fakeGateway{}
	m := newTestModel(t, gw, nil)
	before := *m.State()

	for _, k := range []tea.KeyType{tea.KeyCtrlT, tea.KeyCtrlG, tea.KeyCtrlP} {
		var cmd tea.Cmd
		m, cmd = update(m, key(k))
		assert.Nil(t, cmd)
	}
	assert.Zero(t, gw.total())
	assert.Equal(t, before, *m.State())
}

func TestTranslate_Flow(t *testing.T) {
	gw := &fakeGateway{res: &types.TranslationResult{
		SimplifiedText: "La PCU controla el combustible del motor.",
		Glossary:       []types.GlossaryEntry{{Term: "PCU", Definition: "Unidad de control de propulsión."}},
	}}
	m := newTestModel(t, gw, nil)
	m = typeText(m, pcu)
	require.Equal(t, pcu, m.State().InputText)

	m, cmd := update(m, key(tea.KeyCtrlT))
	require.NotNil(t, cmd)
	assert.True(t, m.State().Translating)

	// every trigger is disabled while an action runs
	m, other := update(m, key(tea.KeyCtrlG))
	assert.Nil(t, other)
	assert.False(t, m.State().GeneratingImage)

	m = settle(t, m, cmd)
	assert.False(t, m.State().Busy())
	require.NotNil(t, m.State().Translation)
	assert.Equal(t, "PCU", m.State().Translation.Glossary[0].Term)
	assert.Empty(t, m.State().Err)
	assert.Equal(t, 1, gw.calls[types.ActionTranslate])
	assert.Contains(t, m.renderResults(), "PCU")
}

func TestTranslate_ProviderError(t *testing.T) {
	gw := &fakeGateway{res: &types.TranslationResult{Error: "No tengo información sobre ese tema en el documento proporcionado."}}
	m := typeText(newTestModel(t, gw, nil), "hola")
	m, cmd := update(m, key(tea.KeyCtrlT))
	m = settle(t, m, cmd)

	assert.Nil(t, m.State().Translation)
	assert.Equal(t, "No tengo información sobre ese tema en el documento proporcionado.", m.State().Err)
	assert.Contains(t, m.View(), "No tengo información")
}

func TestTranslate_TransportError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	m := typeText(newTestModel(t, gw, nil), pcu)
	m, cmd := update(m, key(tea.KeyCtrlT))
	m = settle(t, m, cmd)
	assert.Equal(t, "Error al procesar la solicitud: connection refused", m.State().Err)
	assert.False(t, m.State().Busy())
}

func TestVisual_SavesImage(t *testing.T) {
	gw := &fakeGateway{img: &types.ImageResult{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}}
	m := typeText(newTestModel(t, gw, nil), pcu)
	m, cmd := update(m, key(tea.KeyCtrlG))
	assert.True(t, m.State().GeneratingImage)
	m = settle(t, m, cmd)

	require.NotNil(t, m.State().Image)
	require.NotEmpty(t, m.imagePath)
	assert.Equal(t, ".png", filepath.Ext(m.imagePath))
	data, err := os.ReadFile(m.imagePath)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.Contains(t, m.renderResults(), m.imagePath)
}

func TestVisual_NoImage(t *testing.T) {
	m := typeText(newTestModel(t, &fakeGateway{}, nil), pcu)
	m, cmd := update(m, key(tea.KeyCtrlG))
	m = settle(t, m, cmd)
	assert.Nil(t, m.State().Image)
	assert.Equal(t, session.MsgNoImage, m.State().Err)
}

func TestPrompt_CopyIndicator(t *testing.T) {
	var copied []string
	gw := &fakeGateway{prompt: "Infografía técnica de la PCU."}
	m := typeText(newTestModel(t, gw, &copied), pcu)

	m, cmd := update(m, key(tea.KeyCtrlP))
	m = settle(t, m, cmd)
	require.Equal(t, "Infografía técnica de la PCU.", m.State().Prompt)

	m, cmd = update(m, key(tea.KeyCtrlY))
	require.NotNil(t, cmd)
	msgs := runCmd(cmd)
	require.Len(t, msgs, 1)
	m, reset := update(m, msgs[0])
	assert.Equal(t, []string{"Infografía técnica de la PCU."}, copied)
	assert.True(t, m.State().Copied)
	assert.NotNil(t, reset)
	assert.Contains(t, m.renderResults(), "Copiado")

	m, _ = update(m, copyResetMsg{seq: m.copySeq - 1})
	assert.True(t, m.State().Copied)
	m, _ = update(m, copyResetMsg{seq: m.copySeq})
	assert.False(t, m.State().Copied)
}

func TestCopy_WithoutPrompt(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	_, cmd := update(m, key(tea.KeyCtrlY))
	assert.Nil(t, cmd)
}

func TestCopy_Failure(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	m.cfg.Copy = func(string) error { return errors.New("no clipboard") }
	m.state.Prompt = "p"

	m, cmd := update(m, key(tea.KeyCtrlY))
	m = settle(t, m, cmd)
	assert.Equal(t, session.MsgCopyFailed, m.State().Err)
	assert.False(t, m.State().Copied)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSelectFile_LoadsText(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	path := writeFile(t, "pcu.txt", pcu)

	nm, cmd := m.selectFile(path)
	m = nm.(Model)
	require.NotNil(t, m.State().File)
	assert.Equal(t, "pcu.txt", m.State().File.Name)

	m = settle(t, m, cmd)
	assert.Equal(t, pcu, m.State().InputText)
	assert.Equal(t, pcu, m.textarea.Value())
	assert.True(t, m.State().InputLocked())

	// typing is ignored while a file is selected
	m = typeText(m, "x")
	assert.Equal(t, pcu, m.State().InputText)

	m, _ = update(m, key(tea.KeyCtrlX))
	assert.Nil(t, m.State().File)
	assert.Empty(t, m.State().InputText)
	assert.Empty(t, m.textarea.Value())
}

func TestSelectFile_Rejected(t *testing.T) {
	m := typeText(newTestModel(t, &fakeGateway{}, nil), pcu)
	path := writeFile(t, "diagram.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	nm, cmd := m.selectFile(path)
	m = nm.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, session.MsgRejectedFile, m.State().Err)
	assert.Equal(t, pcu, m.State().InputText)
	assert.Nil(t, m.State().File)
}

func TestSelectFile_Undecodable(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	path := writeFile(t, "roto.txt", "caf\xe9 \xff\xfe")

	nm, cmd := m.selectFile(path)
	m = settle(t, nm.(Model), cmd)
	assert.Equal(t, session.MsgReadFailed, m.State().Err)
	assert.Nil(t, m.State().File)
	assert.Empty(t, m.State().InputText)
}

func TestFilePicker_OpenAndEscape(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	m, cmd := update(m, key(tea.KeyCtrlO))
	assert.Equal(t, FilePickerView, m.viewMode)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Seleccionar archivo")

	m, _ = update(m, key(tea.KeyEsc))
	assert.Equal(t, InputView, m.viewMode)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := update(m, key(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowSize_Zero(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	assert.NotPanics(t, func() {
		m, _ = update(m, tea.WindowSizeMsg{Width: 0, Height: 0})
		_ = m.View()
	})
}

func TestSaveImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	path, err := SaveImage(dir, &types.ImageResult{MIMEType: "image/jpeg", Data: []byte{1}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cadet-20250301-100000.000.jpg"), path)
}

func TestNew_Placeholder(t *testing.T) {
	m := newTestModel(t, &fakeGateway{}, nil)
	assert.Equal(t, session.Placeholder, m.textarea.Placeholder)
	assert.Empty(t, m.State().InputText)
	assert.True(t, m.textarea.Focused())
}

func TestSelectFile_PendingLoadSendsNothing(t *testing.T) {
	gw := &fakeGateway{res: &types.TranslationResult{SimplifiedText: "ok"}}
	m := typeText(newTestModel(t, gw, nil), "texto escrito")
	path := writeFile(t, "pcu.txt", pcu)

	nm, load := m.selectFile(path)
	m = nm.(Model)
	assert.Empty(t, m.textarea.Value())

	m, cmd := update(m, key(tea.KeyCtrlT))
	assert.Nil(t, cmd)
	assert.False(t, m.State().Translating)
	assert.Zero(t, gw.total())

	m = settle(t, m, load)
	assert.Equal(t, pcu, m.State().InputText)
}

func TestPaste_TooLongIsRefused(t *testing.T) {
	m := typeText(newTestModel(t, &fakeGateway{}, nil), "inicio")

	long := strings.Repeat("línea\n", TextareaMaxLines)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long), Paste: true})
	assert.Equal(t, session.MsgPasteTooLong, m.State().Err)
	assert.Equal(t, "inicio", m.State().InputText)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" corto"), Paste: true})
	assert.Equal(t, "inicio corto", m.State().InputText)
	assert.Empty(t, m.State().Err)
}
