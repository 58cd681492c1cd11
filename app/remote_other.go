//go:build !windows

package app

import (
	"errors"
	"net"
)

var errNoPipes = errors.New("remote: named pipes are only available on windows")

func listenPipe(name string) (net.Listener, error) {
	return nil, errNoPipes
}

func isListenerClosed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
