//go:build windows

package utils

import (
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	u32               = windows.NewLazySystemDLL("User32.dll")
	pCreateWindowEx   = u32.NewProc("CreateWindowExW")
	pDefWindowProc    = u32.NewProc("DefWindowProcW")
	pDestroyWindow    = u32.NewProc("DestroyWindow")
	pRegisterClass    = u32.NewProc("RegisterClassExW")
	pUnregisterClass  = u32.NewProc("UnregisterClassW")
	pDispatchMessage  = u32.NewProc("DispatchMessageW")
	pTranslateMessage = u32.NewProc("TranslateMessage")
	pGetMessage       = u32.NewProc("GetMessageW")
	pPostMessage      = u32.NewProc("PostMessageW")
	pPostQuitMessage  = u32.NewProc("PostQuitMessage")
	pLoadCursor       = u32.NewProc("LoadCursorW")
	pSetWindowText    = u32.NewProc("SetWindowTextW")
	pSetWindowPos     = u32.NewProc("SetWindowPos")
	pInvalidateRect   = u32.NewProc("InvalidateRect")
	pBeginPaint       = u32.NewProc("BeginPaint")
	pEndPaint         = u32.NewProc("EndPaint")
	pGetClientRect    = u32.NewProc("GetClientRect")
	pDrawText         = u32.NewProc("DrawTextW")
)

const (
	className = "WinMenuHost"

	WM_DESTROY = 0x0002
	WM_SIZE    = 0x0005
	WM_PAINT   = 0x000F
	WM_CLOSE   = 0x0010
	WM_APP     = 0x8000

	wmInvoke = WM_APP + 1

	WS_OVERLAPPEDWINDOW = 0x00CF0000
	WS_VISIBLE          = 0x10000000
	CW_USEDEFAULT       = 0x80000000
	COLOR_WINDOW        = 5
	IDC_ARROW           = 32512

	SWP_NOSIZE     = 0x0001
	SWP_NOMOVE     = 0x0002
	SWP_NOACTIVATE = 0x0010

	DT_WORDBREAK = 0x0010
)

// Contains window class information.
// It is used with the RegisterClassEx and GetClassInfoEx functions.
// https://msdn.microsoft.com/en-us/library/ms633577.aspx
type wndClassEx struct {
	Size, Style                        uint32
	WndProc                            uintptr
	ClsExtra, WndExtra                 int32
	Instance, Icon, Cursor, Background windows.Handle
	MenuName, ClassName                *uint16
	IconSm                             windows.Handle
}

// Registers a window class for subsequent use in calls to the CreateWindow or CreateWindowEx function.
// https://msdn.microsoft.com/en-us/library/ms633587.aspx
func (w *wndClassEx) register() error {
	w.Size = uint32(unsafe.Sizeof(*w))
	res, _, err := pRegisterClass.Call(uintptr(unsafe.Pointer(w)))
	if res == 0 {
		return err
	}
	return nil
}

// Unregister a window class, freeing the memory required for the class.
// https://msdn.microsoft.com/en-us/library/ms644899.aspx
func (w *wndClassEx) unregister() error {
	res, _, err := pUnregisterClass.Call(
		uintptr(unsafe.Pointer(w.ClassName)),
		uintptr(w.Instance),
	)
	if res == 0 {
		return err
	}
	return nil
}

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type paintStruct struct {
	Hdc         windows.Handle
	Erase       int32
	Paint       rect
	Restore     int32
	IncUpdate   int32
	RgbReserved [32]byte
}

type createWindow struct {
	handle   uintptr
	threadId uint32
	err      error
}

// Window is a top-level host window with its own message loop thread.
type Window struct {
	class    *wndClassEx
	hwnd     windows.Handle
	threadId uint32
	closed   chan struct{}

	mu      sync.Mutex
	queue   []func()
	info    string
	onClose func()
}

// NewWindow creates a visible window and runs its message loop on a locked OS
// thread until the window is destroyed.
func NewWindow(title string, width, height int) (*Window, error) {
	classNamePtr, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		return nil, err
	}
	titlePtr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}

	win := &Window{closed: make(chan struct{})}
	cursor, _, _ := pLoadCursor.Call(0, IDC_ARROW)
	wcex := &wndClassEx{
		WndProc:    windows.NewCallback(win.wndProc),
		ClassName:  classNamePtr,
		Cursor:     windows.Handle(cursor),
		Background: windows.Handle(COLOR_WINDOW + 1),
	}
	err = wcex.register()
	if err != nil {
		return nil, err
	}
	win.class = wcex

	ch := make(chan createWindow)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		windowHandle, _, err := pCreateWindowEx.Call(
			uintptr(0),
			uintptr(unsafe.Pointer(classNamePtr)),
			uintptr(unsafe.Pointer(titlePtr)),
			uintptr(WS_OVERLAPPEDWINDOW|WS_VISIBLE),
			uintptr(CW_USEDEFAULT),
			uintptr(CW_USEDEFAULT),
			uintptr(width),
			uintptr(height),
			uintptr(0),
			uintptr(0),
			uintptr(0),
			uintptr(0),
		)
		ch <- createWindow{windowHandle, windows.GetCurrentThreadId(), err}
		if windowHandle == 0 {
			return
		}
		eventLoop()
		wcex.unregister()
		close(win.closed)
	}()
	result := <-ch
	if result.handle == 0 {
		wcex.unregister()
		return nil, result.err
	}
	win.hwnd = windows.Handle(result.handle)
	win.threadId = result.threadId
	return win, nil
}

func (w *Window) Handle() windows.Handle {
	return w.hwnd
}

// Closed is closed once the message loop has ended.
func (w *Window) Closed() <-chan struct{} {
	return w.closed
}

// Invoke runs fn on the window thread and waits for it to return. It reports
// false if the window closed before fn could run.
func (w *Window) Invoke(fn func()) bool {
	select {
	case <-w.closed:
		return false
	default:
	}
	if windows.GetCurrentThreadId() == w.threadId {
		fn()
		return true
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.queue = append(w.queue, func() {
		defer close(done)
		fn()
	})
	w.mu.Unlock()
	if r, _, _ := pPostMessage.Call(uintptr(w.hwnd), wmInvoke, 0, 0); r == 0 {
		return false
	}
	select {
	case <-done:
		return true
	case <-w.closed:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

func (w *Window) runQueue() {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

// SetInfo replaces the text drawn in the client area.
func (w *Window) SetInfo(text string) {
	w.mu.Lock()
	w.info = text
	w.mu.Unlock()
	pInvalidateRect.Call(uintptr(w.hwnd), 0, 1)
}

func (w *Window) SetTitle(title string) error {
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	r, _, err := pSetWindowText.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return err
	}
	return nil
}

func (w *Window) SetTopMost(on bool) error {
	after := int32(-2) // HWND_NOTOPMOST
	if on {
		after = -1 // HWND_TOPMOST
	}
	r, _, err := pSetWindowPos.Call(uintptr(w.hwnd), uintptr(after), 0, 0, 0, 0, SWP_NOMOVE|SWP_NOSIZE|SWP_NOACTIVATE)
	if r == 0 {
		return err
	}
	return nil
}

// OnClose sets a function run on the window thread when the window is asked
// to close, before it is destroyed.
func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	w.onClose = fn
	w.mu.Unlock()
}

// Close asks the window to close; Closed reports when it is gone.
func (w *Window) Close() {
	select {
	case <-w.closed:
		return
	default:
	}
	pPostMessage.Call(uintptr(w.hwnd), WM_CLOSE, 0, 0)
}

func (w *Window) paint(hwnd windows.Handle) {
	var ps paintStruct
	hdc, _, _ := pBeginPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&ps)))
	if hdc == 0 {
		return
	}
	defer pEndPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&ps)))

	w.mu.Lock()
	info := w.info
	w.mu.Unlock()
	if info == "" {
		return
	}
	text, err := syscall.UTF16FromString(info)
	if err != nil {
		return
	}
	var rc rect
	pGetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rc)))
	rc.Left += 8
	rc.Top += 8
	pDrawText.Call(hdc, uintptr(unsafe.Pointer(&text[0])), uintptr(len(text)-1), uintptr(unsafe.Pointer(&rc)), DT_WORDBREAK)
}

func (w *Window) wndProc(hwnd windows.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case wmInvoke:
		w.runQueue()
		return 0
	case WM_PAINT:
		w.paint(hwnd)
		return 0
	case WM_SIZE:
		pInvalidateRect.Call(uintptr(hwnd), 0, 1)
	case WM_CLOSE:
		w.mu.Lock()
		fn := w.onClose
		w.onClose = nil
		w.mu.Unlock()
		if fn != nil {
			fn()
		}
		pDestroyWindow.Call(uintptr(hwnd))
		return 0
	case WM_DESTROY:
		pPostQuitMessage.Call(0)
		return 0
	}
	ret, _, _ := pDefWindowProc.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return ret
}

func eventLoop() {
	m := &struct {
		WindowHandle windows.Handle
		Message      uint32
		Wparam       uintptr
		Lparam       uintptr
		Time         uint32
		Pt           point
	}{}
	for {
		ret, _, _ := pGetMessage.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)

		// If the function retrieves a message other than WM_QUIT, the return value is nonzero.
		// If the function retrieves the WM_QUIT message, the return value is zero.
		// If there is an error, the return value is -1
		// https://msdn.microsoft.com/en-us/library/windows/desktop/ms644936(v=vs.85).aspx
		switch int32(ret) {
		case -1:
			return
		case 0:
			return
		default:
			pTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
			pDispatchMessage.Call(uintptr(unsafe.Pointer(m)))
		}
	}
}
