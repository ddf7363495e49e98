//go:build windows

package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	// COMPUTER_NAME_FORMAT value for the first label of the FQDN.
	computerNamePhysicalDNSHostname = 5

	nerrSuccess = 0
	nerrBase    = 2100
	maxNerr     = nerrBase + 899
)

var (
	modnetapi32  = windows.NewLazySystemDLL("netapi32.dll")
	modkernel32  = windows.NewLazySystemDLL("kernel32.dll")
	procJoin     = modnetapi32.NewProc("NetJoinDomain")
	procUnjoin   = modnetapi32.NewProc("NetUnjoinDomain")
	procSetName  = modkernel32.NewProc("SetComputerNameExW")
	requiredProc = []*windows.LazyProc{procJoin, procUnjoin, procSetName}
)

// Open resolves the NetAPI32 and kernel32 entry points and returns a Service
// backed by them. A missing entry point is fatal.
func Open() (Service, error) {
	for _, p := range requiredProc {
		if err := p.Find(); err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p.Name, err)
		}
	}
	return &windowsService{describer: SystemDescriber()}, nil
}

// SystemDescriber decodes status codes using the system message table, and
// netmsg.dll for network-management (NERR_*) codes.
func SystemDescriber() Describer {
	return DescriberFunc(describe)
}

func describe(code uint32) string {
	if code >= nerrBase && code <= maxNerr {
		if msg, ok := netMessage(code); ok {
			return msg
		}
	}
	return windows.Errno(code).Error()
}

func netMessage(code uint32) (string, bool) {
	h, err := windows.LoadLibraryEx("netmsg.dll", 0, windows.LOAD_LIBRARY_AS_DATAFILE)
	if err != nil {
		return "", false
	}
	defer windows.FreeLibrary(h)

	buf := make([]uint16, 512)
	flags := uint32(windows.FORMAT_MESSAGE_FROM_HMODULE | windows.FORMAT_MESSAGE_IGNORE_INSERTS)
	n, err := windows.FormatMessage(flags, uintptr(h), code, 0, buf, nil)
	if err != nil || n == 0 {
		return "", false
	}
	return strings.TrimRight(windows.UTF16ToString(buf[:n]), "\r\n"), true
}

type windowsService struct {
	describer Describer
}

func (s *windowsService) RenameHost(_ context.Context, name string) error {
	pName, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	r, _, callErr := procSetName.Call(
		uintptr(computerNamePhysicalDNSHostname), // _In_ COMPUTER_NAME_FORMAT NameType,
		uintptr(unsafe.Pointer(pName)),           // _In_ LPCWSTR lpBuffer
	)
	if r != 0 {
		return nil
	}
	var errno syscall.Errno
	if !errors.As(callErr, &errno) {
		return &StatusError{Op: "SetComputerNameEx", Message: callErr.Error()}
	}
	return NewStatusError("SetComputerNameEx", uint32(errno), s.describer)
}

func (s *windowsService) JoinDomain(_ context.Context, req JoinRequest) error {
	ptrs, err := utf16Ptrs(req.Domain, req.OU, req.User, req.Password)
	if err != nil {
		return err
	}
	r, _, _ := procJoin.Call(
		0,                                // _In_opt_ LPCWSTR lpServer,
		uintptr(unsafe.Pointer(ptrs[0])), // _In_     LPCWSTR lpDomain,
		uintptr(unsafe.Pointer(ptrs[1])), // _In_opt_ LPCWSTR lpMachineAccountOU,
		uintptr(unsafe.Pointer(ptrs[2])), // _In_opt_ LPCWSTR lpAccount,
		uintptr(unsafe.Pointer(ptrs[3])), // _In_opt_ LPCWSTR lpPassword,
		uintptr(req.Options),             // _In_     DWORD   fJoinOptions
	)
	if r != nerrSuccess {
		return NewStatusError("NetJoinDomain", uint32(r), s.describer)
	}
	return nil
}

func (s *windowsService) UnjoinDomain(_ context.Context, req UnjoinRequest) error {
	ptrs, err := utf16Ptrs(req.User, req.Password)
	if err != nil {
		return err
	}
	r, _, _ := procUnjoin.Call(
		0,                                // _In_opt_ LPCWSTR lpServer,
		uintptr(unsafe.Pointer(ptrs[0])), // _In_opt_ LPCWSTR lpAccount,
		uintptr(unsafe.Pointer(ptrs[1])), // _In_opt_ LPCWSTR lpPassword,
		uintptr(req.Options),             // _In_     DWORD   fUnjoinOptions
	)
	if r != nerrSuccess {
		return NewStatusError("NetUnjoinDomain", uint32(r), s.describer)
	}
	return nil
}

// utf16Ptrs converts each string to a NUL-terminated UTF-16 pointer. Empty
// strings become nil so optional parameters are passed as NULL.
func utf16Ptrs(values ...string) ([]*uint16, error) {
	ptrs := make([]*uint16, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		p, err := windows.UTF16PtrFromString(v)
		if err != nil {
			return nil, err
		}
		ptrs[i] = p
	}
	return ptrs, nil
}
