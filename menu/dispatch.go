package menu

// Names passed to the Handler when the window enters or leaves its modal menu
// loop. Hosts use them to pause time sensitive work while a menu is open.
const (
	EnterMenuLoopName = "WM_ENTERMENULOOP"
	ExitMenuLoopName  = "WM_EXITMENULOOP"
)

const (
	WM_COMMAND       = 0x0111
	WM_SYSCOMMAND    = 0x0112
	WM_ENTERMENULOOP = 0x0211
	WM_EXITMENULOOP  = 0x0212

	SC_SCREENSAVE   = 0xF140
	SC_MONITORPOWER = 0xF170
)

// Dispatch handles the selection of the item with command id. Auto-check
// items flip their check first. The handler receives the label as it
// currently reads in the menu.
func (r *Registry) Dispatch(id int) bool {
	if id < 0 || id >= len(r.records) {
		return false
	}
	rec := &r.records[id]
	if rec.Separator {
		return false
	}
	if rec.AutoCheck {
		rec.Checked = !rec.Checked
		if err := r.native.CheckItem(rec.Popup, rec.Position, rec.Checked); err != nil {
			r.log.Debug().Err(err).Int("id", id).Msg("toggle check")
		}
	}
	label := r.native.CommandText(rec.Popup, id)
	if label == "" {
		label = rec.Name
	}
	checked := rec.Checked
	r.log.Debug().Str("item", label).Bool("checked", checked).Msg("selected")
	r.notify(label, checked)
	return true
}

// Select dispatches the first item labelled name as if the user picked it.
func (r *Registry) Select(name string) bool {
	for i, rec := range r.records {
		if !rec.Separator && rec.Name == name {
			return r.Dispatch(i)
		}
	}
	return false
}

// Notify reports name to the handler the way a selection would. Callers that
// change a check with SetItemChecked use it to keep listeners in step.
func (r *Registry) Notify(name string, checked bool) {
	r.notify(name, checked)
}

func (r *Registry) EnterMenuLoop() {
	r.notify(EnterMenuLoopName, true)
}

func (r *Registry) ExitMenuLoop() {
	r.notify(ExitMenuLoopName, true)
}

// HandleMessage inspects a window message. Menu notifications are routed to
// the handler and left unhandled so the window procedure still sees them.
// Screen saver requests are swallowed when blocking is enabled.
func (r *Registry) HandleMessage(msg uint32, wParam, lParam uintptr) (uintptr, bool) {
	switch msg {
	case WM_COMMAND:
		// Menus report a zero notification code and no control handle.
		if lParam == 0 && (wParam>>16)&0xFFFF == 0 {
			r.Dispatch(int(wParam & 0xFFFF))
		}
	case WM_ENTERMENULOOP:
		r.EnterMenuLoop()
	case WM_EXITMENULOOP:
		r.ExitMenuLoop()
	case WM_SYSCOMMAND:
		if r.blockScreenSaver {
			switch wParam & 0xFFF0 {
			case SC_SCREENSAVE, SC_MONITORPOWER:
				return 0, true
			}
		}
	}
	return 0, false
}
