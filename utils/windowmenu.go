//go:build windows

package utils

import (
	"github.com/buptczq/WinMenu/menu"
	"golang.org/x/sys/windows"
)

// WindowMenu is a menu registry attached to a window: its menu messages are
// decoded by the registry until Close.
type WindowMenu struct {
	*menu.Registry
	hwnd windows.Handle
}

func NewWindowMenu(hwnd windows.Handle, opts ...menu.Option) (*WindowMenu, error) {
	reg := menu.New(NewMenuNative(hwnd), opts...)
	if err := Subclass(hwnd, reg); err != nil {
		return nil, err
	}
	return &WindowMenu{Registry: reg, hwnd: hwnd}, nil
}

// Close stops decoding messages and forgets the registry state. The menu bar
// itself stays on the window until the window is destroyed.
func (m *WindowMenu) Close() error {
	err := Unsubclass(m.hwnd)
	m.Registry.Close()
	return err
}
