package fileselector

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/CrestNiraj12/thumbpick/tui/common"
)

const (
	maxSuggestions = 8
	browserHeight  = 8
)

// FileChosenMsg is sent when the user picks an accepted file.
type FileChosenMsg struct {
	Path string
}

// Model is a file browser with a path field on top. Typing a directory
// moves the browser there; typing part of a name offers fuzzy jumps.
type Model struct {
	input   textinput.Model
	picker  filepicker.Model
	accept  []string
	keys    common.KeyMap
	focused bool
	browse  bool // Keys go to the browser instead of the path field
	status  string

	suggestions []suggestion
	cursor      int

	readDir func(string) ([]os.DirEntry, error)
}

type suggestion struct {
	name  string
	path  string
	isDir bool
}

// New creates a selector prefilled with currentPath. The browser opens in
// the directory of currentPath.
func New(label, placeholder, currentPath string, accept []string) Model {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.Placeholder = placeholder
	ti.SetValue(currentPath)
	ti.CursorEnd()

	accept = normalizeAccept(accept)
	fp := filepicker.New()
	fp.AllowedTypes = allowedTypes(accept)
	fp.CurrentDirectory = dirOf(currentPath)
	fp.ShowPermissions = false
	fp.AutoHeight = false
	fp.SetHeight(browserHeight)
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("backspace", "left", "h"), key.WithHelp("←", "back"))

	return Model{
		input:   ti,
		picker:  fp,
		accept:  accept,
		keys:    common.DefaultKeyMap(),
		readDir: os.ReadDir,
	}
}

func normalizeAccept(accept []string) []string {
	out := make([]string, 0, len(accept))
	for _, a := range accept {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if !strings.HasPrefix(a, ".") {
			a = "." + a
		}
		out = append(out, a)
	}
	return out
}

// allowedTypes adds upper-case variants; the browser matches suffixes
// case-sensitively.
func allowedTypes(accept []string) []string {
	out := make([]string, 0, 2*len(accept))
	for _, a := range accept {
		out = append(out, a, strings.ToUpper(a))
	}
	return out
}

// dirOf is the directory part of a typed path, "." when there is none.
func dirOf(p string) string {
	dir, _ := filepath.Split(expandHome(p))
	if dir == "" {
		return "."
	}
	return filepath.Clean(dir)
}

// Value returns the typed path.
func (m Model) Value() string { return m.input.Value() }

// Directory returns the directory the browser shows.
func (m Model) Directory() string { return m.picker.CurrentDirectory }

// Focused reports whether the selector has focus.
func (m Model) Focused() bool { return m.focused }

// Typing reports whether keys currently edit the path field.
func (m Model) Typing() bool { return m.focused && !m.browse }

// Focus gives the path field focus and loads the browser.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focused = true
	m.browse = false
	cmd := m.input.Focus()
	m.refresh()
	return m, tea.Batch(cmd, m.picker.Init())
}

// Blur removes focus and hides suggestions.
func (m Model) Blur() Model {
	m.focused = false
	m.browse = false
	m.input.Blur()
	m.suggestions = nil
	m.cursor = 0
	return m
}

// SetPath replaces the typed path if it differs and moves the browser to
// its directory.
func (m Model) SetPath(p string) (Model, tea.Cmd) {
	if m.input.Value() == p {
		return m, nil
	}
	m.input.SetValue(p)
	m.input.CursorEnd()
	if m.focused {
		m.refresh()
	}
	return m, m.follow(dirOf(p))
}

// Accepts reports whether path has an accepted extension.
func (m Model) Accepts(path string) bool {
	return slices.Contains(m.accept, strings.ToLower(filepath.Ext(path)))
}

// Update handles key input while focused. Directory listings are always
// delivered to the browser.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var inputCmd, pickerCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		m.picker, pickerCmd = m.picker.Update(msg)
		return m, tea.Batch(inputCmd, pickerCmd)
	}
	if !m.focused {
		return m, nil
	}
	if m.browse {
		return m.updateBrowser(keyMsg)
	}
	return m.updatePathField(keyMsg)
}

func (m Model) updatePathField(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if len(m.suggestions) == 0 {
			m.browse = true
			m.status = ""
			m.input.Blur()
			return m, nil
		}
		if m.cursor < len(m.suggestions)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		return m.choose()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.status = ""
	m.refresh()
	if dir := expandHome(strings.TrimSpace(m.input.Value())); isDir(dir) {
		return m, tea.Batch(cmd, m.follow(dir))
	}
	return m, cmd
}

func (m Model) updateBrowser(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.PathField) {
		m.browse = false
		cmd := m.input.Focus()
		m.refresh()
		return m, cmd
	}

	oldDir := m.picker.CurrentDirectory
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if m.picker.CurrentDirectory != oldDir {
		m.status = ""
		m.input.SetValue(withSep(m.picker.CurrentDirectory))
		m.input.CursorEnd()
	}
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.input.SetValue(path)
		m.input.CursorEnd()
		return m, chosen(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = m.unsupported(path)
		return m, nil
	}
	return m, cmd
}

func (m Model) choose() (Model, tea.Cmd) {
	if len(m.suggestions) > 0 {
		s := m.suggestions[m.cursor]
		if s.isDir {
			m.input.SetValue(withSep(s.path))
			m.input.CursorEnd()
			m.refresh()
			return m, m.follow(s.path)
		}
		return m, chosen(s.path)
	}

	p := expandHome(strings.TrimSpace(m.input.Value()))
	if p == "" {
		return m, nil
	}
	info, err := os.Stat(p)
	switch {
	case err != nil:
		m.status = "No such file: " + p
		return m, nil
	case info.IsDir():
		m.browse = true
		m.input.Blur()
		return m, m.follow(p)
	case !m.Accepts(p):
		m.status = m.unsupported(p)
		return m, nil
	}
	return m, chosen(p)
}

func (m Model) unsupported(path string) string {
	return "Unsupported file type " + filepath.Base(path) + ", choose " + strings.Join(m.accept, ", ")
}

// follow moves the browser to dir and reloads it when the directory changed.
func (m *Model) follow(dir string) tea.Cmd {
	if filepath.Clean(dir) == filepath.Clean(m.picker.CurrentDirectory) {
		return nil
	}
	m.picker.CurrentDirectory = filepath.Clean(dir)
	return m.picker.Init()
}

func chosen(path string) tea.Cmd {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return func() tea.Msg { return FileChosenMsg{Path: path} }
}

// refresh recomputes the fuzzy jumps for a partly typed name. A path that
// ends in a separator is left to the browser.
func (m *Model) refresh() {
	m.cursor = 0
	m.suggestions = nil

	dir, base := filepath.Split(expandHome(m.input.Value()))
	if base == "" {
		return
	}
	if dir == "" {
		dir = "."
	}
	entries, err := m.readDir(dir)
	if err != nil {
		return
	}

	candidates := make([]suggestion, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !e.IsDir() && !m.Accepts(name) {
			continue
		}
		candidates = append(candidates, suggestion{name: name, path: filepath.Join(dir, name), isDir: e.IsDir()})
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	for _, match := range fuzzy.Find(base, names) {
		m.suggestions = append(m.suggestions, candidates[match.Index])
		if len(m.suggestions) >= maxSuggestions {
			break
		}
	}
}

func isDir(p string) bool {
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func withSep(dir string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
