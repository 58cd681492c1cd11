package common

const (
	APP_NAME  = "WinMenu"
	INI_NAME  = "winmenu.ini"
	PIPE_NAME = "\\\\.\\pipe\\winmenu"

	POPUP_FILE = "File"
	POPUP_VIEW = "View"
	POPUP_HELP = "Help"

	ITEM_EXIT = "Exit"
)

// Tray menu command ids. They live outside the window menu id range.
const (
	TRAY_TOGGLE_MENU = 0x7F00 + iota
	TRAY_QUIT
)

const (
	ENV_INI      = "WINMENU_INI"
	ENV_DATA_DIR = "WINMENU_DATA_DIR"
	ENV_PIPE     = "WINMENU_PIPE"
	ENV_NO_PIPE  = "WINMENU_NO_PIPE"
	ENV_NO_TRAY  = "WINMENU_NO_TRAY"
	ENV_LOG_FILE = "WINMENU_LOG_FILE"
	ENV_DEBUG    = "WINMENU_DEBUG"
)
