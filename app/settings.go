package app

import (
	"bytes"
	"context"
	"errors"
	"io/fs"

	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/menu"
	"github.com/rs/zerolog"
)

const (
	ITEM_SAVE   = "Save settings"
	ITEM_RELOAD = "Reload settings"
	ITEM_COPY   = "Copy settings"
)

// Settings saves and restores the menu state in the settings file.
type Settings struct {
	host Host
	reg  *menu.Registry
	name string
	log  zerolog.Logger
}

func NewSettings(host Host, name string, log zerolog.Logger) *Settings {
	return &Settings{
		host: host,
		name: name,
		log:  log.With().Str("component", "settings").Logger(),
	}
}

func (*Settings) AppId() AppId {
	return APP_SETTINGS
}

func (*Settings) Run(ctx context.Context) error {
	return nil
}

func (s *Settings) Menu(b *Builder) {
	s.reg = b.Registry()
	b.Item(common.POPUP_FILE, ITEM_SAVE, func(bool) { s.onSave() }, menu.AutoCheck(false))
	b.Item(common.POPUP_FILE, ITEM_RELOAD, func(bool) { s.onReload() }, menu.AutoCheck(false))
	b.Item(common.POPUP_FILE, ITEM_COPY, func(bool) { s.onCopy() }, menu.AutoCheck(false))
}

// Restore loads the settings file. A missing file is not an error; it only
// greys out the reload item.
func (s *Settings) Restore() error {
	if s.reg == nil {
		return menu.ErrNoMenu
	}
	err := s.reg.Load(s.name)
	if errors.Is(err, fs.ErrNotExist) {
		s.reg.EnableItem(ITEM_RELOAD, false)
		return nil
	}
	if err == nil {
		s.reg.EnableItem(ITEM_RELOAD, true)
	}
	return err
}

// Store writes the settings file. Without overwrite an existing file is only
// replaced after confirmation.
func (s *Settings) Store(overwrite bool) error {
	if s.reg == nil {
		return menu.ErrNoMenu
	}
	if err := s.reg.Save(s.name, overwrite); err != nil {
		return err
	}
	s.reg.EnableItem(ITEM_RELOAD, true)
	return nil
}

// Snapshot renders the menu state the way it would be saved.
func (s *Settings) Snapshot() (string, error) {
	if s.reg == nil {
		return "", menu.ErrNoMenu
	}
	var buf bytes.Buffer
	if _, err := s.reg.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Settings) onSave() {
	if err := s.Store(false); err != nil {
		s.log.Error().Err(err).Msg("save")
		s.host.Alert("Error:", err.Error())
		return
	}
	s.host.Notify(common.APP_NAME, "Settings saved")
}

func (s *Settings) onReload() {
	if err := s.Restore(); err != nil {
		s.log.Error().Err(err).Msg("reload")
		s.host.Alert("Error:", err.Error())
		return
	}
	s.host.Notify(common.APP_NAME, "Settings reloaded")
}

func (s *Settings) onCopy() {
	text, err := s.Snapshot()
	if err == nil {
		err = s.host.SetClipboard(text)
	}
	if err != nil {
		s.log.Error().Err(err).Msg("copy")
		s.host.Alert("Error:", err.Error())
	}
}
