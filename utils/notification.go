//go:build windows

package utils

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/hattya/go.notify"
)

var (
	procMessageBox = u32.NewProc("MessageBoxW")
	notifier       notify.Notifier
)

const (
	MB_OK              = 0x00000000
	MB_YESNO           = 0x00000004
	MB_ICONHAND        = 0x00000010
	MB_ICONQUESTION    = 0x00000020
	MB_ICONEXCLAMATION = 0x00000030
	MB_ICONASTERISK    = 0x00000040
	MB_ICONWARNING     = MB_ICONEXCLAMATION
	MB_ICONERROR       = MB_ICONHAND
	MB_ICONINFORMATION = MB_ICONASTERISK
	MB_DEFBUTTON2      = 0x00000100
	MB_TASKMODAL       = 0x00002000

	IDOK  = 1
	IDYES = 6
	IDNO  = 7
)

func MessageBox(title, text string, style uintptr) int {
	pText, err := syscall.UTF16PtrFromString(text)
	if err != nil {
		return -1
	}
	pTitle, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return -1
	}
	ret, _, _ := procMessageBox.Call(
		0,
		uintptr(unsafe.Pointer(pText)),
		uintptr(unsafe.Pointer(pTitle)),
		style,
	)
	return int(ret)
}

// Confirm asks before an existing settings file is replaced. It has the
// shape of menu.ConfirmFunc.
func Confirm(path string) bool {
	text := fmt.Sprintf("%s already exists.\nDo you want to replace it?", path)
	return MessageBox("Confirm Save", text, MB_YESNO|MB_ICONQUESTION|MB_DEFBUTTON2|MB_TASKMODAL) == IDYES
}

func Notify(title, message string) {
	if notifier == nil {
		return
	}
	notifier.Notify("info", title, message)
}

func RegisterNotifier(n notify.Notifier) {
	notifier = n
}
