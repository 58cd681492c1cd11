package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type selection struct {
	name    string
	checked bool
}

type recorder struct {
	got []selection
}

func (r *recorder) MenuSelected(name string, checked bool) {
	r.got = append(r.got, selection{name, checked})
}

func TestDispatchAutoCheckToggles(t *testing.T) {
	r, native, root := newTestRegistry(t)
	view := r.AddPopup(root, "View")
	require.True(t, r.AddItem(view, "Show info"))
	rec := &recorder{}
	r.RegisterCallback(rec)

	require.True(t, r.Dispatch(0))
	assert.True(t, r.ItemChecked("Show info"))
	assert.True(t, native.IsChecked(view, 0))

	require.True(t, r.Dispatch(0))
	assert.False(t, r.ItemChecked("Show info"))
	assert.False(t, native.IsChecked(view, 0))

	assert.Equal(t, []selection{{"Show info", true}, {"Show info", false}}, rec.got)
}

func TestDispatchWithoutAutoCheckKeepsState(t *testing.T) {
	r, _, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "About", AutoCheck(false)))
	require.True(t, r.AddItem(file, "Pinned", Checked(true), AutoCheck(false)))
	rec := &recorder{}
	r.RegisterCallback(rec)

	require.True(t, r.Dispatch(0))
	require.True(t, r.Dispatch(1))
	assert.False(t, r.ItemChecked("About"))
	assert.True(t, r.ItemChecked("Pinned"))
	assert.Equal(t, []selection{{"About", false}, {"Pinned", true}}, rec.got)
}

func TestDispatchReportsLiveLabel(t *testing.T) {
	r, native, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "Stored", AutoCheck(false)))
	require.NoError(t, native.SetItemText(file, 0, "Live"))
	rec := &recorder{}
	r.RegisterCallback(rec)

	require.True(t, r.Dispatch(0))
	assert.Equal(t, []selection{{"Live", false}}, rec.got)
}

func TestDispatchIgnoresBadIdentifiers(t *testing.T) {
	r, _, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddSeparator(file))
	rec := &recorder{}
	r.RegisterCallback(rec)

	assert.False(t, r.Dispatch(-1))
	assert.False(t, r.Dispatch(0))
	assert.False(t, r.Dispatch(7))
	assert.Empty(t, rec.got)
}

func TestDispatchWithoutCallback(t *testing.T) {
	r, _, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "A"))
	assert.True(t, r.Dispatch(0))
	assert.True(t, r.ItemChecked("A"))
}

func TestRegisterCallbackLastWins(t *testing.T) {
	r, _, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "A"))
	first, second := &recorder{}, &recorder{}
	r.RegisterCallback(first)
	r.RegisterCallback(second)

	r.Dispatch(0)
	assert.Empty(t, first.got)
	assert.Len(t, second.got, 1)
}

func TestSelectByName(t *testing.T) {
	r, _, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "A"))
	require.True(t, r.AddItem(file, "B"))
	rec := &recorder{}
	r.RegisterCallback(rec)

	require.True(t, r.Select("B"))
	assert.False(t, r.Select("C"))
	assert.Equal(t, []selection{{"B", true}}, rec.got)
}

func TestNotifyUsesRegisteredHandler(t *testing.T) {
	r, native, root := newTestRegistry(t)
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "A"))
	r.Notify("A", true)

	rec := &recorder{}
	r.RegisterCallback(rec)
	require.True(t, r.SetItemChecked("A", true))
	r.Notify("A", true)
	assert.Equal(t, []selection{{"A", true}}, rec.got)
	// notifying does not touch the check state
	assert.True(t, native.IsChecked(file, 0))
	assert.True(t, r.ItemChecked("A"))
}

func TestHandleMessage(t *testing.T) {
	r, _, root := newTestRegistry(t, WithScreenSaverBlocked(true))
	file := r.AddPopup(root, "File")
	require.True(t, r.AddItem(file, "A", AutoCheck(false)))
	require.True(t, r.AddItem(file, "B"))
	rec := &recorder{}
	r.RegisterCallback(rec)

	tests := []struct {
		name    string
		msg     uint32
		wParam  uintptr
		lParam  uintptr
		handled bool
		want    []selection
	}{
		{"menu command", WM_COMMAND, 1, 0, false, []selection{{"B", true}}},
		{"accelerator", WM_COMMAND, 1<<16 | 1, 0, false, nil},
		{"control", WM_COMMAND, 0, 0x1234, false, nil},
		{"enter loop", WM_ENTERMENULOOP, 0, 0, false, []selection{{EnterMenuLoopName, true}}},
		{"exit loop", WM_EXITMENULOOP, 0, 0, false, []selection{{ExitMenuLoopName, true}}},
		{"screen saver", WM_SYSCOMMAND, SC_SCREENSAVE, 0, true, nil},
		{"monitor power", WM_SYSCOMMAND, SC_MONITORPOWER | 0x2, 0, true, nil},
		{"other syscommand", WM_SYSCOMMAND, 0xF060, 0, false, nil},
		{"unrelated", 0x000F, 0, 0, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.got = nil
			_, handled := r.HandleMessage(tt.msg, tt.wParam, tt.lParam)
			assert.Equal(t, tt.handled, handled)
			assert.Equal(t, tt.want, rec.got)
		})
	}
}

func TestHandleMessageScreenSaverAllowedByDefault(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	_, handled := r.HandleMessage(WM_SYSCOMMAND, SC_SCREENSAVE, 0)
	assert.False(t, handled)
}
