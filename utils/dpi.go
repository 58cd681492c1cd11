//go:build windows

package utils

import "golang.org/x/sys/windows"

var (
	shcore                          = windows.NewLazySystemDLL("Shcore.dll")
	pSetProcessDpiAwareness         = shcore.NewProc("SetProcessDpiAwareness")
	pSetProcessDpiAwarenessContext  = u32.NewProc("SetProcessDpiAwarenessContext")
	pSetProcessDPIAware             = u32.NewProc("SetProcessDPIAware")
	dpiAwarenessContextPerMonitorV2 = ^uintptr(3) // (DPI_AWARENESS_CONTEXT)-4
)

// SetProcessSystemDpiAware keeps the menu bar crisp on scaled displays. It
// tries the newest API the system has.
func SetProcessSystemDpiAware() error {
	if pSetProcessDpiAwarenessContext.Find() == nil {
		r0, _, _ := pSetProcessDpiAwarenessContext.Call(dpiAwarenessContextPerMonitorV2)
		if r0 == 1 {
			return nil
		}
	}
	if pSetProcessDpiAwareness.Find() == nil {
		// PROCESS_SYSTEM_DPI_AWARE; returns an HRESULT
		r0, _, err := pSetProcessDpiAwareness.Call(uintptr(1))
		if r0 == 0 {
			return nil
		}
		return err
	}
	if pSetProcessDPIAware.Find() == nil {
		r0, _, err := pSetProcessDPIAware.Call()
		if r0 == 1 {
			return nil
		}
		return err
	}
	return nil
}
