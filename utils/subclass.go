//go:build windows

package utils

import (
	"errors"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	pSetWindowLongPtr = setWindowLongProc()
	pCallWindowProc   = u32.NewProc("CallWindowProcW")

	errSubclassed    = errors.New("window is already subclassed")
	errNotSubclassed = errors.New("window is not subclassed")
)

const GWLP_WNDPROC = -4

// MessageHandler sees a message before the window's own procedure. Returning
// false passes the message on.
type MessageHandler interface {
	HandleMessage(msg uint32, wParam, lParam uintptr) (uintptr, bool)
}

type subclass struct {
	handler  MessageHandler
	prevProc uintptr
}

var (
	subclassMu   sync.Mutex
	subclasses   = make(map[windows.Handle]*subclass)
	subclassCb   uintptr
	subclassOnce sync.Once
)

func setWindowLongProc() *windows.LazyProc {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return u32.NewProc("SetWindowLongPtrW")
	}
	return u32.NewProc("SetWindowLongW")
}

func setWindowProc(hwnd windows.Handle, proc uintptr) (uintptr, error) {
	index := int32(GWLP_WNDPROC)
	prev, _, err := pSetWindowLongPtr.Call(uintptr(hwnd), uintptr(index), proc)
	if prev == 0 {
		return 0, err
	}
	return prev, nil
}

// Subclass routes the messages of hwnd through handler. Every subclassed
// window shares one callback; the handler is found by window handle.
func Subclass(hwnd windows.Handle, handler MessageHandler) error {
	subclassOnce.Do(func() {
		subclassCb = windows.NewCallback(subclassProc)
	})
	subclassMu.Lock()
	defer subclassMu.Unlock()
	if _, ok := subclasses[hwnd]; ok {
		return errSubclassed
	}
	prev, err := setWindowProc(hwnd, subclassCb)
	if err != nil {
		return err
	}
	subclasses[hwnd] = &subclass{handler: handler, prevProc: prev}
	return nil
}

// Unsubclass restores the window procedure that Subclass replaced.
func Unsubclass(hwnd windows.Handle) error {
	subclassMu.Lock()
	defer subclassMu.Unlock()
	sc, ok := subclasses[hwnd]
	if !ok {
		return errNotSubclassed
	}
	delete(subclasses, hwnd)
	_, err := setWindowProc(hwnd, sc.prevProc)
	return err
}

func subclassProc(hwnd windows.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	subclassMu.Lock()
	sc := subclasses[hwnd]
	subclassMu.Unlock()
	if sc == nil {
		r, _, _ := pDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
		return r
	}
	if r, handled := sc.handler.HandleMessage(msg, wParam, lParam); handled {
		return r
	}
	r, _, _ := pCallWindowProc.Call(sc.prevProc, uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}
