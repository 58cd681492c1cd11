package app

import (
	"context"
	"fmt"

	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/menu"
)

// Version is set at link time.
var Version = "dev"

type About struct {
	host Host
}

func NewAbout(host Host) *About {
	return &About{host: host}
}

func (*About) AppId() AppId {
	return APP_ABOUT
}

func (*About) Run(ctx context.Context) error {
	return nil
}

func (s *About) Menu(b *Builder) {
	b.Item(common.POPUP_HELP, s.AppId().String(), s.onClick, menu.AutoCheck(false))
}

func (s *About) onClick(bool) {
	s.host.Alert("About "+common.APP_NAME, aboutText())
}

func aboutText() string {
	return fmt.Sprintf("%s %s\n\nNative window menu with settings saved to %s.\n"+
		"Remote control pipe: %s",
		common.APP_NAME, Version, common.INI_NAME, common.PIPE_NAME)
}
