package app

import (
	"context"
	"strings"

	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/menu"
	"github.com/rs/zerolog"
)

const (
	ITEM_SHOW_INFO = "Show info"
	ITEM_TOP_MOST  = "Always on top"
)

// Display owns the view toggles: the on-window info line and z-order.
type Display struct {
	host     Host
	log      zerolog.Logger
	ShowInfo bool
	TopMost  bool
	menuOpen bool
}

func NewDisplay(host Host, log zerolog.Logger) *Display {
	return &Display{
		host:     host,
		log:      log.With().Str("component", "display").Logger(),
		ShowInfo: true,
	}
}

func (*Display) AppId() AppId {
	return APP_DISPLAY
}

func (*Display) Run(ctx context.Context) error {
	return nil
}

func (s *Display) Menu(b *Builder) {
	b.Item(common.POPUP_VIEW, ITEM_SHOW_INFO, s.onShowInfo, menu.Checked(s.ShowInfo))
	b.Item(common.POPUP_VIEW, ITEM_TOP_MOST, s.onTopMost, menu.Checked(s.TopMost))
	b.OnMenuLoop(s.onMenuLoop)
	s.refresh()
}

func (s *Display) onShowInfo(checked bool) {
	s.ShowInfo = checked
	s.refresh()
}

func (s *Display) onTopMost(checked bool) {
	if err := s.host.SetTopMost(checked); err != nil {
		s.log.Warn().Err(err).Bool("on", checked).Msg("set top most")
		return
	}
	s.TopMost = checked
	s.refresh()
}

func (s *Display) onMenuLoop(open bool) {
	s.menuOpen = open
	s.refresh()
}

// InfoText is the line drawn on the window, empty when hidden.
func (s *Display) InfoText() string {
	if !s.ShowInfo {
		return ""
	}
	parts := []string{"View > Show info hides this line"}
	if s.TopMost {
		parts = append(parts, "always on top")
	}
	if s.menuOpen {
		parts = append(parts, "menu open, updates paused")
	}
	return strings.Join(parts, " | ")
}

func (s *Display) refresh() {
	s.host.SetInfo(s.InfoText())
}
