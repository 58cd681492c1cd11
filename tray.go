//go:build windows

package main

import (
	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/utils"
	notification "github.com/hattya/go.notify/windows"
)

// Tray is the notification area icon. Its menu items map to handlers run on
// the main goroutine.
type Tray struct {
	icon     *notification.NotifyIcon
	menu     *notification.Menu
	handlers map[uint]func()
}

func NewTray(title string) (*Tray, error) {
	icon, err := notification.LoadIcon(1)
	if err != nil {
		return nil, err
	}
	n, err := notification.NewNotifier(title, icon)
	if err != nil {
		return nil, err
	}
	n.Register("info", notification.IconInfo, map[string]interface{}{
		"windows:sound": false,
	})
	utils.RegisterNotifier(n)
	sysTray := n.Sys().(*notification.NotifyIcon)
	return &Tray{sysTray, sysTray.CreateMenu(), make(map[uint]func())}, nil
}

func (t *Tray) Register(id uint, name string, handler func()) {
	t.menu.Item(name, id)
	t.handlers[id] = handler
}

func (t *Tray) Sep() {
	t.menu.Sep()
}

func (t *Tray) Show() error {
	return t.icon.Add()
}

// Handle runs the handler for a clicked item and reports whether the item
// was the quit entry.
func (t *Tray) Handle(id uint) bool {
	if id == common.TRAY_QUIT {
		return true
	}
	if handler, ok := t.handlers[id]; ok {
		handler()
	}
	return false
}

func (t *Tray) Close() {
	t.icon.Close()
}
