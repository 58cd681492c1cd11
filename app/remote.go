package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/buptczq/WinMenu/common"
	"github.com/buptczq/WinMenu/menu"
	"github.com/rs/zerolog"
)

const ITEM_REMOTE = "Remote control"

// Remote serves a line protocol on a named pipe so scripts can read and drive
// the menu:
//
//	LIST                 name=0|1 lines, then "."
//	GET name             1 or 0
//	SET name=0|1         check state, reported like a selection
//	ENABLE name=0|1      enable or grey out
//	SELECT name          act as if the user picked the item
//	RENAME name=new      relabel
//	SAVE, LOAD           write or reread the settings file
//
// Failures answer "ERR reason"; other commands answer "OK".
type Remote struct {
	host     Host
	settings *Settings
	pipe     string
	log      zerolog.Logger
	listen   func(name string) (net.Listener, error)

	builder *Builder
	enabled bool
}

func NewRemote(host Host, settings *Settings, pipe string, log zerolog.Logger) *Remote {
	return &Remote{
		host:     host,
		settings: settings,
		pipe:     pipe,
		log:      log.With().Str("component", "remote").Logger(),
		listen:   listenPipe,
	}
}

func (*Remote) AppId() AppId {
	return APP_REMOTE
}

func (s *Remote) Menu(b *Builder) {
	s.builder = b
	s.enabled = true
	b.Item(common.POPUP_VIEW, ITEM_REMOTE, func(checked bool) {
		s.enabled = checked
	}, menu.Checked(true))
}

func (s *Remote) Run(ctx context.Context) error {
	l, err := s.listen(s.pipe)
	if err != nil {
		return err
	}
	defer l.Close()
	s.log.Info().Str("pipe", s.pipe).Msg("listening")

	wg := new(sync.WaitGroup)
	// context cancelled
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	for {
		conn, err := l.Accept()
		if err != nil {
			wg.Wait()
			if isListenerClosed(err) {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-done:
				}
			}()
			s.Serve(conn)
		}()
	}
}

// Serve answers commands on conn until it is closed.
func (s *Remote) Serve(conn io.ReadWriteCloser) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	w := bufio.NewWriter(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := s.Execute(line)
		if _, err := w.WriteString(reply + "\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Debug().Err(err).Msg("read")
	}
}

// Execute runs one command line on the window thread and returns the reply.
func (s *Remote) Execute(line string) string {
	cmd, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	reply := "ERR window closed"
	s.host.Invoke(func() {
		reply = s.apply(strings.ToUpper(cmd), arg)
	})
	s.log.Debug().Str("command", line).Str("reply", reply).Msg("executed")
	return reply
}

func (s *Remote) apply(cmd, arg string) string {
	if s.builder == nil {
		return "ERR no menu"
	}
	if !s.enabled {
		return "ERR remote control disabled"
	}
	reg := s.builder.Registry()
	switch cmd {
	case "LIST":
		var sb strings.Builder
		for _, rec := range reg.Records() {
			if rec.Separator {
				continue
			}
			fmt.Fprintf(&sb, "%s=%s\n", rec.Name, onOff(rec.Checked))
		}
		sb.WriteString(".")
		return sb.String()
	case "GET":
		rec, ok := reg.Find(arg)
		if !ok {
			return "ERR unknown item"
		}
		return onOff(rec.Checked)
	case "SET":
		name, on, err := splitState(arg)
		if err != nil {
			return "ERR " + err.Error()
		}
		if !reg.SetItemChecked(name, on) {
			return "ERR unknown item"
		}
		reg.Notify(name, on)
		return "OK"
	case "ENABLE":
		name, on, err := splitState(arg)
		if err != nil {
			return "ERR " + err.Error()
		}
		if !reg.EnableItem(name, on) {
			return "ERR unknown item"
		}
		return "OK"
	case "SELECT":
		if !reg.Select(arg) {
			return "ERR unknown item"
		}
		return "OK"
	case "RENAME":
		i := strings.IndexByte(arg, '=')
		if i <= 0 || i == len(arg)-1 {
			return "ERR expected name=new"
		}
		if !s.builder.Rename(arg[:i], arg[i+1:]) {
			return "ERR unknown item"
		}
		return "OK"
	case "SAVE":
		if err := s.settings.Store(true); err != nil {
			return "ERR " + err.Error()
		}
		return "OK"
	case "LOAD":
		if err := s.settings.Restore(); err != nil {
			return "ERR " + err.Error()
		}
		return "OK"
	}
	return "ERR unknown command"
}

func splitState(arg string) (string, bool, error) {
	i := strings.LastIndexByte(arg, '=')
	if i <= 0 {
		return "", false, fmt.Errorf("expected name=0|1")
	}
	switch arg[i+1:] {
	case "1":
		return arg[:i], true, nil
	case "0":
		return arg[:i], false, nil
	}
	return "", false, fmt.Errorf("expected name=0|1")
}

func onOff(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
