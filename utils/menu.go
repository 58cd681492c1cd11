//go:build windows

package utils

import (
	"syscall"
	"unsafe"

	"github.com/buptczq/WinMenu/menu"
	"golang.org/x/sys/windows"
)

var (
	pCreateMenu       = u32.NewProc("CreateMenu")
	pCreatePopupMenu  = u32.NewProc("CreatePopupMenu")
	pAppendMenu       = u32.NewProc("AppendMenuW")
	pInsertMenu       = u32.NewProc("InsertMenuW")
	pGetMenuItemCount = u32.NewProc("GetMenuItemCount")
	pGetSubMenu       = u32.NewProc("GetSubMenu")
	pGetMenuString    = u32.NewProc("GetMenuStringW")
	pGetMenuItemID    = u32.NewProc("GetMenuItemID")
	pCheckMenuItem    = u32.NewProc("CheckMenuItem")
	pEnableMenuItem   = u32.NewProc("EnableMenuItem")
	pModifyMenu       = u32.NewProc("ModifyMenuW")
	pIsMenu           = u32.NewProc("IsMenu")
	pGetMenu          = u32.NewProc("GetMenu")
	pSetMenu          = u32.NewProc("SetMenu")
	pDrawMenuBar      = u32.NewProc("DrawMenuBar")
	pDestroyMenu      = u32.NewProc("DestroyMenu")
	pGetWindowLong    = u32.NewProc("GetWindowLongW")
)

const (
	MF_STRING     = 0x0000
	MF_GRAYED     = 0x0001
	MF_CHECKED    = 0x0008
	MF_POPUP      = 0x0010
	MF_SEPARATOR  = 0x0800
	MF_BYCOMMAND  = 0x0000
	MF_BYPOSITION = 0x0400
	MF_UNCHECKED  = 0x0000
	MF_ENABLED    = 0x0000

	GWL_STYLE = -16
	WS_CHILD  = 0x40000000

	maxMenuText = 256
)

// MenuNative drives the menu bar of one top-level window through user32.
type MenuNative struct {
	hwnd windows.Handle
}

func NewMenuNative(hwnd windows.Handle) *MenuNative {
	return &MenuNative{hwnd: hwnd}
}

func (n *MenuNative) hasMenuSlot() bool {
	index := int32(GWL_STYLE)
	style, _, _ := pGetWindowLong.Call(uintptr(n.hwnd), uintptr(index))
	return uint32(style)&WS_CHILD == 0
}

func (n *MenuNative) WindowMenu() menu.Handle {
	if !n.hasMenuSlot() {
		return 0
	}
	h, _, _ := pGetMenu.Call(uintptr(n.hwnd))
	return menu.Handle(h)
}

func (n *MenuNative) CreateMenu() (menu.Handle, error) {
	h, _, err := pCreateMenu.Call()
	if h == 0 {
		return 0, err
	}
	return menu.Handle(h), nil
}

func (n *MenuNative) CreatePopupMenu() (menu.Handle, error) {
	h, _, err := pCreatePopupMenu.Call()
	if h == 0 {
		return 0, err
	}
	return menu.Handle(h), nil
}

func (n *MenuNative) AppendPopup(parent, popup menu.Handle, label string) error {
	text, err := syscall.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	r, _, err := pAppendMenu.Call(uintptr(parent), MF_STRING|MF_POPUP, uintptr(popup), uintptr(unsafe.Pointer(text)))
	if r == 0 {
		return err
	}
	n.redraw()
	return nil
}

func (n *MenuNative) InsertItem(popup menu.Handle, pos, id int, label string) error {
	text, err := syscall.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	r, _, err := pInsertMenu.Call(uintptr(popup), uintptr(pos), MF_BYPOSITION|MF_STRING, uintptr(id), uintptr(unsafe.Pointer(text)))
	if r == 0 {
		return err
	}
	return nil
}

func (n *MenuNative) InsertSeparator(popup menu.Handle, pos, id int) error {
	r, _, err := pInsertMenu.Call(uintptr(popup), uintptr(pos), MF_BYPOSITION|MF_SEPARATOR, uintptr(id), 0)
	if r == 0 {
		return err
	}
	return nil
}

func (n *MenuNative) ItemCount(popup menu.Handle) int {
	// -1 when popup is not a menu
	r, _, _ := pGetMenuItemCount.Call(uintptr(popup))
	return int(int32(r))
}

func (n *MenuNative) SubMenu(popup menu.Handle, pos int) menu.Handle {
	h, _, _ := pGetSubMenu.Call(uintptr(popup), uintptr(pos))
	return menu.Handle(h)
}

func (n *MenuNative) menuString(popup menu.Handle, item int, flags uintptr) string {
	buf := make([]uint16, maxMenuText)
	r, _, _ := pGetMenuString.Call(uintptr(popup), uintptr(item), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)), flags)
	if r == 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}

func (n *MenuNative) ItemText(popup menu.Handle, pos int) string {
	return n.menuString(popup, pos, MF_BYPOSITION)
}

// CommandText searches popup and its submenus for the item with the command id.
func (n *MenuNative) CommandText(popup menu.Handle, id int) string {
	return n.menuString(popup, id, MF_BYCOMMAND)
}

func (n *MenuNative) CheckItem(popup menu.Handle, pos int, checked bool) error {
	flags := uintptr(MF_BYPOSITION | MF_UNCHECKED)
	if checked {
		flags = MF_BYPOSITION | MF_CHECKED
	}
	// returns the previous state, or -1 if the item does not exist
	r, _, _ := pCheckMenuItem.Call(uintptr(popup), uintptr(pos), flags)
	if int32(r) == -1 {
		return windows.ERROR_INVALID_PARAMETER
	}
	return nil
}

func (n *MenuNative) EnableItem(popup menu.Handle, pos int, enabled bool) error {
	flags := uintptr(MF_BYPOSITION | MF_GRAYED)
	if enabled {
		flags = MF_BYPOSITION | MF_ENABLED
	}
	r, _, _ := pEnableMenuItem.Call(uintptr(popup), uintptr(pos), flags)
	if int32(r) == -1 {
		return windows.ERROR_INVALID_PARAMETER
	}
	n.redraw()
	return nil
}

func (n *MenuNative) SetItemText(popup menu.Handle, pos int, label string) error {
	text, err := syscall.UTF16PtrFromString(label)
	if err != nil {
		return err
	}
	id, _, _ := pGetMenuItemID.Call(uintptr(popup), uintptr(pos))
	flags := uintptr(MF_BYPOSITION | MF_STRING)
	if sub := n.SubMenu(popup, pos); sub != 0 {
		flags |= MF_POPUP
		id = uintptr(sub)
	}
	r, _, err := pModifyMenu.Call(uintptr(popup), uintptr(pos), flags, id, uintptr(unsafe.Pointer(text)))
	if r == 0 {
		return err
	}
	n.redraw()
	return nil
}

func (n *MenuNative) IsMenu(h menu.Handle) bool {
	if h == 0 {
		return false
	}
	r, _, _ := pIsMenu.Call(uintptr(h))
	return r != 0
}

func (n *MenuNative) SetMenu(h menu.Handle) error {
	if !n.hasMenuSlot() {
		return windows.ERROR_INVALID_WINDOW_HANDLE
	}
	r, _, err := pSetMenu.Call(uintptr(n.hwnd), uintptr(h))
	if r == 0 {
		return err
	}
	n.redraw()
	return nil
}

// DestroyMenu frees h and every submenu attached to it.
func (n *MenuNative) DestroyMenu(h menu.Handle) error {
	r, _, err := pDestroyMenu.Call(uintptr(h))
	if r == 0 {
		return err
	}
	return nil
}

func (n *MenuNative) redraw() {
	pDrawMenuBar.Call(uintptr(n.hwnd))
}
