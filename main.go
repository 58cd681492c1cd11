//go:build windows

package main

//go:generate goversioninfo -icon=assets/icon.ico

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/buptczq/WinMenu/app"
	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/config"
	"github.com/buptczq/WinMenu/logger"
	"github.com/buptczq/WinMenu/menu"
	"github.com/buptczq/WinMenu/utils"
)

// windowHost lets the applications act on the host window.
type windowHost struct {
	win *utils.Window
}

func (h *windowHost) Alert(title, text string) {
	utils.MessageBox(title, text, utils.MB_ICONWARNING)
}

func (h *windowHost) Notify(title, message string) {
	utils.Notify(title, message)
}

func (h *windowHost) SetInfo(text string) {
	h.win.SetInfo(text)
}

func (h *windowHost) SetTopMost(on bool) error {
	return h.win.SetTopMost(on)
}

func (h *windowHost) SetClipboard(text string) error {
	return utils.SetClipBoard(h.win.Handle(), text)
}

func (h *windowHost) Invoke(fn func()) bool {
	return h.win.Invoke(fn)
}

func (h *windowHost) Close() {
	h.win.Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.MessageBox("Error:", err.Error(), utils.MB_ICONERROR)
		os.Exit(2)
	}
	logPath := cfg.Logging.FilePath
	if logPath != "" && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(utils.ExeDir(), logPath)
	}
	log, closer, err := logger.New(logPath, cfg.Logging.Debug)
	if err != nil {
		utils.MessageBox("Error:", err.Error(), utils.MB_ICONERROR)
		return
	}
	defer closer.Close()

	if err := utils.SetProcessSystemDpiAware(); err != nil {
		log.Debug().Err(err).Msg("dpi awareness")
	}

	win, err := utils.NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Error().Err(err).Msg("create window")
		utils.MessageBox("Error:", err.Error(), utils.MB_ICONERROR)
		return
	}
	host := &windowHost{win: win}

	dataDir := cfg.Settings.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(utils.ExeDir(), "data")
	}
	settings := app.NewSettings(host, cfg.Settings.IniName, log)
	remote := app.NewRemote(host, settings, cfg.Remote.PipeName, log)
	applications := []app.Application{
		settings,
		app.NewDisplay(host, log),
		remote,
		app.NewAbout(host),
	}

	// menu bar, built on the window thread
	var wm *utils.WindowMenu
	win.Invoke(func() {
		wm, err = utils.NewWindowMenu(win.Handle(),
			menu.WithLogger(log),
			menu.WithConfirm(utils.Confirm),
			menu.WithDataDir(dataDir),
			menu.WithScreenSaverBlocked(true),
		)
		if err != nil {
			return
		}
		b := app.NewBuilder(wm.Registry, log)
		for _, popup := range []string{common.POPUP_FILE, common.POPUP_VIEW, common.POPUP_HELP} {
			b.Popup(popup)
		}
		for _, v := range applications {
			v.Menu(b)
		}
		b.Separator(common.POPUP_FILE)
		b.Item(common.POPUP_FILE, common.ITEM_EXIT, func(bool) { win.Close() }, menu.AutoCheck(false))
		wm.SetWindowMenu()
		win.OnClose(func() {
			if err := settings.Store(true); err != nil {
				log.Error().Err(err).Msg("save settings")
			}
			wm.Close()
		})

		if err := settings.Restore(); err != nil {
			log.Warn().Err(err).Msg("restore settings")
			host.Alert("Error:", err.Error())
		}
	})
	if wm == nil {
		log.Error().Err(err).Msg("attach menu")
		utils.MessageBox("Error:", "could not attach the menu bar", utils.MB_ICONERROR)
		win.Close()
		return
	}

	// context
	ctx, cancel := context.WithCancel(context.Background())

	// application
	wg := new(sync.WaitGroup)
	for _, v := range applications {
		if v.AppId() == app.APP_REMOTE && !cfg.Remote.Enabled {
			continue
		}
		wg.Add(1)
		go func(application app.Application) {
			err := application.Run(ctx)
			if err != nil {
				log.Error().Err(err).Str("app", application.AppId().String()).Msg("run")
				utils.MessageBox(application.AppId().String()+" Error:", err.Error(), utils.MB_ICONWARNING)
			}
			wg.Done()
		}(v)
	}

	// interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	// systray
	var tray *Tray
	if !cfg.NoTray {
		tray, err = NewTray(cfg.Window.Title)
		if err != nil {
			log.Warn().Err(err).Msg("tray icon unavailable")
			tray = nil
		}
	}
	if tray != nil {
		menuShown := true
		tray.Register(common.TRAY_TOGGLE_MENU, "Toggle menu bar", func() {
			win.Invoke(func() {
				if menuShown {
					menuShown = !wm.RemoveWindowMenu()
				} else {
					menuShown = wm.SetWindowMenu()
				}
			})
		})
		tray.Sep()
		tray.Register(common.TRAY_QUIT, "Quit", nil)
		if err := tray.Show(); err != nil {
			log.Warn().Err(err).Msg("show tray icon")
			tray.Close()
			tray = nil
		}
	}

	// event
	if tray != nil {
		for {
			select {
			case clicked := <-tray.icon.Menu:
				if tray.Handle(uint(clicked.ID)) {
					goto cleanup
				}
			case <-tray.icon.Balloon:
				continue
			case <-win.Closed():
				goto cleanup
			case <-quit:
				goto cleanup
			}
		}
	}
	select {
	case <-win.Closed():
	case <-quit:
	}
cleanup:
	if tray != nil {
		tray.Close()
	}
	win.Close()
	select {
	case <-time.NewTimer(time.Second * 5).C:
	case <-win.Closed():
	}
	cancel()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		done <- struct{}{}
	}()
	select {
	case <-time.NewTimer(time.Second * 10).C:
	case <-done:
	}
	log.Info().Msg("exit")
}
