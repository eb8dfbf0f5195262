package platform

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"breakreminder/internal/core/timekeeper"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInputProvider struct{}

func newIdleProvider() IdleProvider {
	if procGetLastInputInfo.Find() != nil || procGetTickCount.Find() != nil {
		return unsupportedIdleProvider{}
	}
	return lastInputProvider{}
}

func (lastInputProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}

	// Both counters are 32-bit milliseconds and wrap together.
	now, _, _ := procGetTickCount.Call()
	idleMillis := uint32(now) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
