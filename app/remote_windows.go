//go:build windows

package app

import (
	"errors"
	"net"

	"github.com/Microsoft/go-winio"
)

func listenPipe(name string) (net.Listener, error) {
	var cfg = &winio.PipeConfig{}
	return winio.ListenPipe(name, cfg)
}

func isListenerClosed(err error) bool {
	return err == winio.ErrPipeListenerClosed || errors.Is(err, net.ErrClosed)
}
