package menu

import (
	"errors"
	"fmt"
)

var (
	errNoSlot      = errors.New("menu: window has no menu slot")
	errNotMenu     = errors.New("menu: invalid menu handle")
	errNoItem      = errors.New("menu: no item at position")
	errInjected    = errors.New("menu: injected failure")
	errAlreadyUsed = errors.New("menu: popup already attached")
)

type memItem struct {
	id        int
	label     string
	separator bool
	sub       Handle
	checked   bool
	disabled  bool
}

type memMenu struct {
	items    []memItem
	attached bool
}

// MemoryNative is an in-process Native. It backs the registry where no window
// system is available and lets tests inspect what the registry drew.
type MemoryNative struct {
	// NoMenuSlot makes CreateMenu fail, like a child window.
	NoMenuSlot bool
	// FailInsert makes item and separator insertion fail.
	FailInsert bool

	menus    map[Handle]*memMenu
	next     Handle
	attached Handle
}

func NewMemoryNative() *MemoryNative {
	return &MemoryNative{
		menus: make(map[Handle]*memMenu),
		next:  0x100,
	}
}

func (m *MemoryNative) alloc() Handle {
	m.next++
	m.menus[m.next] = &memMenu{}
	return m.next
}

func (m *MemoryNative) get(h Handle) (*memMenu, error) {
	mm, ok := m.menus[h]
	if !ok {
		return nil, fmt.Errorf("%w: %#x", errNotMenu, uintptr(h))
	}
	return mm, nil
}

func (m *MemoryNative) item(h Handle, pos int) (*memItem, error) {
	mm, err := m.get(h)
	if err != nil {
		return nil, err
	}
	if pos < 0 || pos >= len(mm.items) {
		return nil, fmt.Errorf("%w %d", errNoItem, pos)
	}
	return &mm.items[pos], nil
}

func (m *MemoryNative) WindowMenu() Handle {
	return m.attached
}

func (m *MemoryNative) CreateMenu() (Handle, error) {
	if m.NoMenuSlot {
		return 0, errNoSlot
	}
	return m.alloc(), nil
}

func (m *MemoryNative) CreatePopupMenu() (Handle, error) {
	return m.alloc(), nil
}

func (m *MemoryNative) AppendPopup(parent, popup Handle, label string) error {
	pm, err := m.get(parent)
	if err != nil {
		return err
	}
	sub, err := m.get(popup)
	if err != nil {
		return err
	}
	if sub.attached {
		return errAlreadyUsed
	}
	sub.attached = true
	pm.items = append(pm.items, memItem{id: -1, label: label, sub: popup})
	return nil
}

func (m *MemoryNative) insert(popup Handle, pos int, it memItem) error {
	if m.FailInsert {
		return errInjected
	}
	mm, err := m.get(popup)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(mm.items) {
		mm.items = append(mm.items, it)
		return nil
	}
	mm.items = append(mm.items, memItem{})
	copy(mm.items[pos+1:], mm.items[pos:])
	mm.items[pos] = it
	return nil
}

func (m *MemoryNative) InsertItem(popup Handle, pos, id int, label string) error {
	return m.insert(popup, pos, memItem{id: id, label: label})
}

func (m *MemoryNative) InsertSeparator(popup Handle, pos, id int) error {
	return m.insert(popup, pos, memItem{id: id, separator: true})
}

func (m *MemoryNative) ItemCount(popup Handle) int {
	mm, err := m.get(popup)
	if err != nil {
		return -1
	}
	return len(mm.items)
}

func (m *MemoryNative) SubMenu(popup Handle, pos int) Handle {
	it, err := m.item(popup, pos)
	if err != nil {
		return 0
	}
	return it.sub
}

func (m *MemoryNative) ItemText(popup Handle, pos int) string {
	it, err := m.item(popup, pos)
	if err != nil {
		return ""
	}
	return it.label
}

func (m *MemoryNative) CommandText(popup Handle, id int) string {
	mm, err := m.get(popup)
	if err != nil {
		return ""
	}
	for _, it := range mm.items {
		if it.sub != 0 {
			if s := m.CommandText(it.sub, id); s != "" {
				return s
			}
			continue
		}
		if it.id == id && !it.separator {
			return it.label
		}
	}
	return ""
}

func (m *MemoryNative) CheckItem(popup Handle, pos int, checked bool) error {
	it, err := m.item(popup, pos)
	if err != nil {
		return err
	}
	it.checked = checked
	return nil
}

func (m *MemoryNative) EnableItem(popup Handle, pos int, enabled bool) error {
	it, err := m.item(popup, pos)
	if err != nil {
		return err
	}
	it.disabled = !enabled
	return nil
}

func (m *MemoryNative) SetItemText(popup Handle, pos int, label string) error {
	it, err := m.item(popup, pos)
	if err != nil {
		return err
	}
	it.label = label
	return nil
}

func (m *MemoryNative) IsMenu(h Handle) bool {
	_, ok := m.menus[h]
	return ok
}

func (m *MemoryNative) SetMenu(h Handle) error {
	if h != 0 {
		if _, err := m.get(h); err != nil {
			return err
		}
	}
	m.attached = h
	return nil
}

func (m *MemoryNative) DestroyMenu(h Handle) error {
	mm, err := m.get(h)
	if err != nil {
		return err
	}
	for _, it := range mm.items {
		if it.sub != 0 {
			m.DestroyMenu(it.sub)
		}
	}
	delete(m.menus, h)
	if m.attached == h {
		m.attached = 0
	}
	return nil
}

// Labels returns the labels of popup in order; separators read as "-".
func (m *MemoryNative) Labels(popup Handle) []string {
	mm, err := m.get(popup)
	if err != nil {
		return nil
	}
	out := make([]string, len(mm.items))
	for i, it := range mm.items {
		if it.separator {
			out[i] = "-"
			continue
		}
		out[i] = it.label
	}
	return out
}

// IsChecked reports the check mark drawn at pos.
func (m *MemoryNative) IsChecked(popup Handle, pos int) bool {
	it, err := m.item(popup, pos)
	return err == nil && it.checked
}

// IsEnabled reports whether the item at pos is selectable.
func (m *MemoryNative) IsEnabled(popup Handle, pos int) bool {
	it, err := m.item(popup, pos)
	return err == nil && !it.disabled
}
