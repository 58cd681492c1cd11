package menu

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

func buildSettingsMenu(t *testing.T, r *Registry, root Handle) (Handle, Handle) {
	t.Helper()
	file := r.AddPopup(root, "File")
	view := r.AddPopup(root, "View")
	require.True(t, r.AddItem(file, "Options", AutoCheck(false)))
	require.True(t, r.AddSeparator(file))
	require.True(t, r.AddItem(file, "Exit", AutoCheck(false)))
	require.True(t, r.AddItem(view, "Show info", Checked(true)))
	require.True(t, r.AddItem(view, "Full screen"))
	require.True(t, r.AddItem(view, "Top most"))
	return file, view
}

func TestResolvePath(t *testing.T) {
	dir := filepath.Join("base", "data")
	tests := []struct {
		name string
		in   string
		want string
		err  bool
	}{
		{"bare name", "settings", filepath.Join(dir, "settings.ini"), false},
		{"bare with ext", "settings.ini", filepath.Join(dir, "settings.ini"), false},
		{"upper ext", "settings.INI", filepath.Join(dir, "settings.INI"), false},
		{"with dir", filepath.Join("other", "settings"), filepath.Join("other", "settings.ini"), false},
		{"with dir and ext", filepath.Join("other", "s.ini"), filepath.Join("other", "s.ini"), false},
		{"wrong ext", "settings.txt", "", true},
		{"wrong ext with dir", filepath.Join("other", "s.cfg"), "", true},
		{"empty", "  ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(dir, tt.in)
			if tt.err {
				require.ErrorIs(t, err, ErrNotIni)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)
	require.True(t, r.SetItemChecked("Show info", false))
	require.True(t, r.SetItemChecked("Top most", true))

	require.NoError(t, r.Save("example", true))

	data, err := os.ReadFile(filepath.Join(dir, "example.ini"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "[Menu]")
	assert.Contains(t, text, "Show info=0")
	assert.Contains(t, text, "Full screen=0")
	assert.Contains(t, text, "Top most=1")
	assert.NotContains(t, text, "Options")
	assert.NotContains(t, text, "Exit")

	fresh, native, root2 := newTestRegistry(t, WithDataDir(dir))
	_, view := buildSettingsMenu(t, fresh, root2)
	rec := &recorder{}
	fresh.RegisterCallback(rec)

	require.NoError(t, fresh.Load("example"))
	for _, name := range []string{"Show info", "Full screen", "Top most"} {
		assert.Equal(t, r.ItemChecked(name), fresh.ItemChecked(name), name)
	}
	assert.False(t, native.IsChecked(view, 0))
	assert.True(t, native.IsChecked(view, 2))
	assert.Equal(t, []selection{
		{"Show info", false},
		{"Full screen", false},
		{"Top most", true},
	}, rec.got)
}

func TestLoadLeavesManualItemsAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manual.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Menu]\nOptions=1\nExit=1\nTop most=1\n"), 0644))

	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)
	rec := &recorder{}
	r.RegisterCallback(rec)

	require.NoError(t, r.Load(path))
	assert.False(t, r.ItemChecked("Options"))
	assert.False(t, r.ItemChecked("Exit"))
	assert.True(t, r.ItemChecked("Top most"))
	// absent keys keep their state
	assert.True(t, r.ItemChecked("Show info"))
	assert.Equal(t, []selection{{"Top most", true}}, rec.got)
}

func TestLoadFailuresDoNotMutate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s.txt"), []byte("[Menu]\nShow info=0\n"), 0644))

	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)
	rec := &recorder{}
	r.RegisterCallback(rec)
	before := r.Records()

	err := r.Load("s.txt")
	require.ErrorIs(t, err, ErrNotIni)

	err = r.Load("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Equal(t, before, r.Records())
	assert.Empty(t, rec.got)
}

func TestLoadSkipsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.ini"),
		[]byte("[Other]\nTop most=1\n[Menu]\nShow info=maybe\nFull screen=true\n"), 0644))

	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)

	require.NoError(t, r.Load("bad"))
	assert.True(t, r.ItemChecked("Show info"))
	assert.True(t, r.ItemChecked("Full screen"))
	assert.False(t, r.ItemChecked("Top most"))
}

func TestLoadWithoutMenuSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "none.ini"), []byte("[Graphics]\nSlider 1=25500\n"), 0644))
	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)
	before := r.Records()
	require.NoError(t, r.Load("none"))
	assert.Equal(t, before, r.Records())
}

func TestSaveKeepsOtherSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.ini")
	require.NoError(t, os.WriteFile(path, []byte("[Graphics]\nSlider 1=25500\n\n[Menu]\nShow info=0\nStale=1\n"), 0644))

	r, _, root := newTestRegistry(t, WithDataDir(dir))
	buildSettingsMenu(t, r, root)
	require.NoError(t, r.Save("shared", true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "[Graphics]")
	assert.Contains(t, text, "Slider 1=25500")
	assert.Contains(t, text, "Show info=1")
	assert.Contains(t, text, "Stale=1")
}

func TestSaveOverwritePrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.ini")
	original := []byte("[Menu]\nShow info=0\n")

	tests := []struct {
		name    string
		confirm ConfirmFunc
		changed bool
	}{
		{"no prompt declines", nil, false},
		{"declined", func(string) bool { return false }, false},
		{"accepted", func(string) bool { return true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, original, 0644))
			var asked string
			confirm := tt.confirm
			if confirm != nil {
				inner := confirm
				confirm = func(p string) bool {
					asked = p
					return inner(p)
				}
			}
			r, _, root := newTestRegistry(t, WithDataDir(dir), WithConfirm(confirm))
			buildSettingsMenu(t, r, root)

			require.NoError(t, r.Save("prompt", false))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			if tt.changed {
				assert.Contains(t, string(data), "Show info=1")
			} else {
				assert.Equal(t, original, data)
			}
			if tt.confirm != nil {
				assert.Equal(t, path, asked)
			}
		})
	}
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	r, _, root := newTestRegistry(t, WithDataDir(dir), WithConfirm(func(string) bool {
		t.Fatal("no prompt expected for a new file")
		return false
	}))
	buildSettingsMenu(t, r, root)
	require.NoError(t, r.Save("fresh.ini", false))
	_, err := os.Stat(filepath.Join(dir, "fresh.ini"))
	require.NoError(t, err)
}

func TestSaveRejectsWrongExtension(t *testing.T) {
	r, _, root := newTestRegistry(t)
	buildSettingsMenu(t, r, root)
	require.ErrorIs(t, r.Save("settings.json", true), ErrNotIni)
}

func TestWriteTo(t *testing.T) {
	r, _, root := newTestRegistry(t)
	buildSettingsMenu(t, r, root)
	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	lines := strings.Fields(strings.NewReplacer(" ", "_").Replace(buf.String()))
	assert.Equal(t, []string{"[Menu]", "Show_info=1", "Full_screen=0", "Top_most=0"}, lines)
	assert.False(t, ini.PrettyFormat)
}

func TestWriteToSkipsEmptyLabel(t *testing.T) {
	r, _, root := newTestRegistry(t)
	view := r.AddPopup(root, "View")
	require.True(t, r.AddItem(view, "", Checked(true)))
	require.True(t, r.AddItem(view, "Show info", Checked(true)))

	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		_, err := r.WriteTo(&buf)
		assert.NoError(t, err)
	})
	assert.Equal(t, []string{"[Menu]", "Show_info=1"}, strings.Fields(strings.NewReplacer(" ", "_").Replace(buf.String())))
	assert.NotPanics(t, func() {
		assert.NoError(t, r.Save("empty", true))
	})
}

func TestStorable(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"Show info", true},
		{"Full screen (F11)", true},
		{"&Open", true},
		{"50% zoom", true},
		{"", false},
		{"-", false},
		{"#1 priority", false},
		{";semi", false},
		{"[Beta] mode", false},
		{" padded ", false},
		{"trailing ", false},
		{"\tleading", false},
		{"quote\"d", false},
		{"a`b", false},
		{"two\nlines", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Storable(tt.label), "%q", tt.label)
	}
}

func TestSaveLoadHostileLabels(t *testing.T) {
	labels := []string{"", "-", "#1 priority", ";semi", "[Beta] mode", " padded ", "quote\"d", "a`b", "two\nlines"}
	for _, label := range labels {
		t.Run(label, func(t *testing.T) {
			dir := t.TempDir()
			build := func(r *Registry, root Handle, checked bool) {
				view := r.AddPopup(root, "View")
				require.True(t, r.AddItem(view, "Before", Checked(checked)))
				require.True(t, r.AddItem(view, label, Checked(checked)))
				require.True(t, r.AddItem(view, "After", Checked(checked)))
			}
			r, _, root := newTestRegistry(t, WithDataDir(dir))
			build(r, root, true)
			assert.NotPanics(t, func() {
				assert.NoError(t, r.Save("hostile", true))
			})

			fresh, _, root2 := newTestRegistry(t, WithDataDir(dir))
			build(fresh, root2, false)
			rec := &recorder{}
			fresh.RegisterCallback(rec)
			require.NoError(t, fresh.Load("hostile"))

			// the label is not stored, and items after it are not lost
			assert.True(t, fresh.ItemChecked("Before"))
			assert.True(t, fresh.ItemChecked("After"))
			assert.False(t, fresh.Records()[1].Checked)
			assert.Equal(t, []selection{{"Before", true}, {"After", true}}, rec.got)
		})
	}
}
