package menu

// Handle identifies a native menu. Zero is the null handle.
type Handle uintptr

// Native is the slice of the operating system menu API the registry needs.
// Positions are zero based and relative to the given popup. Every call is
// made from the thread that owns the window.
type Native interface {
	// WindowMenu returns the menu currently attached to the window, or 0.
	WindowMenu() Handle
	// CreateMenu creates a menu bar. It fails when the window cannot carry one.
	CreateMenu() (Handle, error)
	CreatePopupMenu() (Handle, error)
	// AppendPopup appends popup to parent as a titled submenu.
	AppendPopup(parent, popup Handle, label string) error
	// InsertItem inserts a command item before pos. A pos past the end appends.
	InsertItem(popup Handle, pos, id int, label string) error
	// InsertSeparator inserts a separator before pos. A pos past the end appends.
	InsertSeparator(popup Handle, pos, id int) error
	// ItemCount returns the number of items in popup, or -1 if it is not a menu.
	ItemCount(popup Handle) int
	// SubMenu returns the submenu opened by the item at pos, or 0.
	SubMenu(popup Handle, pos int) Handle
	// ItemText returns the label of the item at pos.
	ItemText(popup Handle, pos int) string
	// CommandText returns the label of the item with command id, searching
	// popup and its submenus.
	CommandText(popup Handle, id int) string
	CheckItem(popup Handle, pos int, checked bool) error
	EnableItem(popup Handle, pos int, enabled bool) error
	SetItemText(popup Handle, pos int, label string) error
	IsMenu(h Handle) bool
	// SetMenu attaches h to the window. Zero detaches the current menu.
	SetMenu(h Handle) error
	DestroyMenu(h Handle) error
}
