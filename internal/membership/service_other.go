//go:build !windows

package membership

// Open always fails outside Windows.
func Open() (Service, error) {
	return nil, ErrUnsupported
}
