package app

import (
	"github.com/buptczq/WinMenu/menu"
	"github.com/rs/zerolog"
)

// Builder lays out the window menu and routes selections by label. It is
// the registry's only handler.
type Builder struct {
	reg      *menu.Registry
	root     menu.Handle
	popups   map[string]menu.Handle
	handlers map[string]func(checked bool)
	loop     []func(open bool)
	log      zerolog.Logger
}

func NewBuilder(reg *menu.Registry, log zerolog.Logger) *Builder {
	b := &Builder{
		reg:      reg,
		root:     reg.CreateRootMenu(),
		popups:   make(map[string]menu.Handle),
		handlers: make(map[string]func(bool)),
		log:      log.With().Str("component", "builder").Logger(),
	}
	reg.RegisterCallback(b)
	return b
}

func (b *Builder) Registry() *menu.Registry {
	return b.reg
}

// Popup returns the top level popup titled title, creating it on first use.
func (b *Builder) Popup(title string) menu.Handle {
	if h, ok := b.popups[title]; ok {
		return h
	}
	h := b.reg.AddPopup(b.root, title)
	if h == 0 {
		b.log.Warn().Str("popup", title).Msg("popup not created")
		return 0
	}
	b.popups[title] = h
	return h
}

// Item adds label to the popup titled popup and routes its selections to fn.
func (b *Builder) Item(popup, label string, fn func(checked bool), opts ...menu.ItemOption) bool {
	if !b.reg.AddItem(b.Popup(popup), label, opts...) {
		b.log.Warn().Str("popup", popup).Str("item", label).Msg("item not added")
		return false
	}
	if fn != nil {
		b.handlers[label] = fn
	}
	return true
}

func (b *Builder) Separator(popup string) bool {
	return b.reg.AddSeparator(b.Popup(popup))
}

// OnMenuLoop registers fn to hear when a menu opens (true) and closes (false).
func (b *Builder) OnMenuLoop(fn func(open bool)) {
	b.loop = append(b.loop, fn)
}

// Rename relabels an item and moves its route along with it.
func (b *Builder) Rename(label, newLabel string) bool {
	if !b.reg.RenameItem(label, newLabel) {
		return false
	}
	if fn, ok := b.handlers[label]; ok {
		delete(b.handlers, label)
		b.handlers[newLabel] = fn
	}
	return true
}

func (b *Builder) MenuSelected(name string, checked bool) {
	switch name {
	case menu.EnterMenuLoopName, menu.ExitMenuLoopName:
		open := name == menu.EnterMenuLoopName
		for _, fn := range b.loop {
			fn(open)
		}
		return
	}
	fn, ok := b.handlers[name]
	if !ok {
		b.log.Debug().Str("item", name).Msg("no handler")
		return
	}
	fn(checked)
}
