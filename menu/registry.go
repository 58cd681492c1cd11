// Package menu keeps the bookkeeping behind a native window menu: which popup
// every item lives in, where it sits, whether it is checked and whether
// selecting it toggles the check. Selections are routed back to a single
// Handler, and the check state of auto-check items can be saved to and
// restored from an INI file.
package menu

import (
	"errors"

	"github.com/rs/zerolog"
)

// Record describes one inserted item or separator. Its index in the registry
// is its command identifier.
type Record struct {
	Name      string
	Popup     Handle
	Position  int
	Checked   bool
	AutoCheck bool
	Separator bool
}

// Handler receives menu selections.
type Handler interface {
	MenuSelected(name string, checked bool)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(name string, checked bool)

func (f HandlerFunc) MenuSelected(name string, checked bool) {
	f(name, checked)
}

// ConfirmFunc is asked before an existing settings file is overwritten.
type ConfirmFunc func(path string) bool

var (
	ErrNoMenu = errors.New("menu: window menu does not exist")
	ErrNotIni = errors.New("menu: not an initialization file")
)

// Registry owns the item records of one window menu.
// It is not safe for concurrent use.
type Registry struct {
	native  Native
	root    Handle
	records []Record
	handler Handler

	log              zerolog.Logger
	confirm          ConfirmFunc
	dataDir          string
	blockScreenSaver bool
}

type Option func(*Registry)

func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = log.With().Str("component", "menu").Logger()
	}
}

// WithConfirm sets the overwrite prompt used by Save. Without one, Save never
// overwrites an existing file unless told to.
func WithConfirm(fn ConfirmFunc) Option {
	return func(r *Registry) {
		r.confirm = fn
	}
}

// WithDataDir sets the directory used for bare settings file names.
func WithDataDir(dir string) Option {
	return func(r *Registry) {
		r.dataDir = dir
	}
}

// WithScreenSaverBlocked makes HandleMessage swallow screen saver and
// monitor power requests while the window is active.
func WithScreenSaverBlocked(block bool) Option {
	return func(r *Registry) {
		r.blockScreenSaver = block
	}
}

func New(native Native, opts ...Option) *Registry {
	r := &Registry{
		native: native,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the window menu created by CreateRootMenu, or 0.
func (r *Registry) Root() Handle {
	return r.root
}

func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of every record in identifier order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Find returns the first item record labelled name.
func (r *Registry) Find(name string) (Record, bool) {
	for _, rec := range r.records {
		if !rec.Separator && rec.Name == name {
			return rec, true
		}
	}
	return Record{}, false
}

// RegisterCallback replaces the selection handler.
func (r *Registry) RegisterCallback(h Handler) {
	r.handler = h
}

func (r *Registry) notify(name string, checked bool) {
	if r.handler != nil {
		r.handler.MenuSelected(name, checked)
	}
}

// CreateRootMenu returns the window menu, creating it on first use. A menu the
// window already carries is adopted. It returns 0 when the window has no menu
// slot.
func (r *Registry) CreateRootMenu() Handle {
	if r.root != 0 && r.native.IsMenu(r.root) {
		return r.root
	}
	if h := r.native.WindowMenu(); h != 0 {
		r.root = h
		return h
	}
	h, err := r.native.CreateMenu()
	if err != nil {
		r.log.Warn().Err(err).Msg("create window menu")
		return 0
	}
	r.root = h
	return h
}

// AddPopup appends a titled submenu to parent and returns it, or 0.
func (r *Registry) AddPopup(parent Handle, label string) Handle {
	if parent == 0 {
		return 0
	}
	popup, err := r.native.CreatePopupMenu()
	if err != nil {
		r.log.Warn().Err(err).Str("popup", label).Msg("create popup")
		return 0
	}
	if err := r.native.AppendPopup(parent, popup, label); err != nil {
		r.log.Warn().Err(err).Str("popup", label).Msg("append popup")
		r.native.DestroyMenu(popup)
		return 0
	}
	return popup
}

type itemConfig struct {
	checked   bool
	autoCheck bool
}

type ItemOption func(*itemConfig)

// Checked sets the initial check state of an item. It only shows when the
// item is also auto-check.
func Checked(on bool) ItemOption {
	return func(c *itemConfig) {
		c.checked = on
	}
}

// AutoCheck controls whether selecting the item toggles its check.
// Items are auto-check by default.
func AutoCheck(on bool) ItemOption {
	return func(c *itemConfig) {
		c.autoCheck = on
	}
}

// AddItem appends a command item to popup.
func (r *Registry) AddItem(popup Handle, label string, opts ...ItemOption) bool {
	if r.root == 0 || popup == 0 {
		return false
	}
	cfg := itemConfig{autoCheck: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	pos := r.native.ItemCount(popup)
	if pos < 0 {
		return false
	}
	id := len(r.records)
	if err := r.native.InsertItem(popup, pos, id, label); err != nil {
		r.log.Warn().Err(err).Str("item", label).Msg("insert item")
		return false
	}
	r.records = append(r.records, Record{
		Name:      label,
		Popup:     popup,
		Position:  pos,
		Checked:   cfg.checked,
		AutoCheck: cfg.autoCheck,
	})
	if cfg.autoCheck && cfg.checked {
		if err := r.native.CheckItem(popup, pos, true); err != nil {
			r.log.Debug().Err(err).Str("item", label).Msg("initial check")
		}
	}
	return true
}

// AddSeparator appends a separator to popup. The insertion point counts the
// items of submenus nested directly in popup, so [A, B, Sub{X, Y}] yields 5.
func (r *Registry) AddSeparator(popup Handle) bool {
	if r.root == 0 || popup == 0 {
		return false
	}
	n := r.native.ItemCount(popup)
	if n < 0 {
		return false
	}
	pos := 0
	for i := 0; i < n; i++ {
		pos++
		if sub := r.native.SubMenu(popup, i); sub != 0 {
			if c := r.native.ItemCount(sub); c > 0 {
				pos += c
			}
		}
	}
	id := len(r.records)
	if err := r.native.InsertSeparator(popup, pos, id); err != nil {
		r.log.Warn().Err(err).Msg("insert separator")
		return false
	}
	r.records = append(r.records, Record{
		Popup:     popup,
		Position:  pos,
		Separator: true,
	})
	return true
}

func (r *Registry) menuAlive() bool {
	return r.root != 0 && r.native.IsMenu(r.root)
}

// locate finds the live position of the first item labelled name. Positions
// are resolved from the popup's current labels rather than trusted from
// insertion time.
func (r *Registry) locate(name string) (int, int, bool) {
	for i := range r.records {
		rec := &r.records[i]
		if rec.Separator || rec.Name != name || rec.Popup == 0 {
			continue
		}
		if pos, ok := r.position(rec.Popup, name); ok {
			return i, pos, true
		}
	}
	return 0, 0, false
}

func (r *Registry) position(popup Handle, label string) (int, bool) {
	n := r.native.ItemCount(popup)
	for j := 0; j < n; j++ {
		if r.native.ItemText(popup, j) == label {
			return j, true
		}
	}
	return 0, false
}

// SetItemChecked sets the check mark of the item labelled name.
func (r *Registry) SetItemChecked(name string, checked bool) bool {
	if !r.menuAlive() {
		return false
	}
	i, pos, ok := r.locate(name)
	if !ok {
		return false
	}
	if err := r.native.CheckItem(r.records[i].Popup, pos, checked); err != nil {
		r.log.Warn().Err(err).Str("item", name).Msg("check item")
		return false
	}
	r.records[i].Checked = checked
	return true
}

// EnableItem enables or greys out the item labelled name.
func (r *Registry) EnableItem(name string, enabled bool) bool {
	if !r.menuAlive() {
		return false
	}
	i, pos, ok := r.locate(name)
	if !ok {
		return false
	}
	if err := r.native.EnableItem(r.records[i].Popup, pos, enabled); err != nil {
		r.log.Warn().Err(err).Str("item", name).Msg("enable item")
		return false
	}
	return true
}

// RenameItem changes the label of the item labelled name.
func (r *Registry) RenameItem(name, newName string) bool {
	if !r.menuAlive() || newName == "" {
		return false
	}
	i, pos, ok := r.locate(name)
	if !ok {
		return false
	}
	if err := r.native.SetItemText(r.records[i].Popup, pos, newName); err != nil {
		r.log.Warn().Err(err).Str("item", name).Msg("rename item")
		return false
	}
	r.records[i].Name = newName
	return true
}

// ItemChecked reports the stored check state of the first item labelled name.
func (r *Registry) ItemChecked(name string) bool {
	rec, ok := r.Find(name)
	return ok && rec.Checked
}

// SetWindowMenu attaches the menu to the window.
func (r *Registry) SetWindowMenu() bool {
	if r.root == 0 {
		return false
	}
	if err := r.native.SetMenu(r.root); err != nil {
		r.log.Warn().Err(err).Msg("set window menu")
		return false
	}
	return true
}

// RemoveWindowMenu detaches the menu from the window without destroying it.
func (r *Registry) RemoveWindowMenu() bool {
	if err := r.native.SetMenu(0); err != nil {
		r.log.Warn().Err(err).Msg("remove window menu")
		return false
	}
	return true
}

// DestroyWindowMenu destroys the native menu tree. The records pointed into
// it, so they are dropped as well.
func (r *Registry) DestroyWindowMenu() bool {
	if r.root == 0 {
		return false
	}
	if err := r.native.DestroyMenu(r.root); err != nil {
		r.log.Warn().Err(err).Msg("destroy window menu")
		return false
	}
	r.root = 0
	r.records = nil
	return true
}

// Close forgets every record and the handler. Native menus are left alone.
func (r *Registry) Close() {
	r.records = nil
	r.handler = nil
	r.root = 0
}
