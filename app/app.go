package app

import (
	"context"
)

const (
	APP_ABOUT = iota
	APP_DISPLAY
	APP_SETTINGS
	APP_REMOTE
)

// Application contributes items to the window menu and may run in the
// background until ctx is cancelled.
type Application interface {
	AppId() AppId
	Run(ctx context.Context) error
	Menu(b *Builder)
}

type AppId int

var appIdToName = map[AppId]string{
	APP_ABOUT:    "About",
	APP_DISPLAY:  "Display",
	APP_SETTINGS: "Settings",
	APP_REMOTE:   "Remote",
}

func (id AppId) String() string {
	return appIdToName[id]
}

// Host is the window the applications act on. Every method except Invoke
// must be called on the window thread.
type Host interface {
	Alert(title, text string)
	Notify(title, message string)
	SetInfo(text string)
	SetTopMost(on bool) error
	SetClipboard(text string) error
	// Invoke runs fn on the window thread and waits for it. It returns false
	// if the window is gone.
	Invoke(fn func()) bool
	Close()
}
