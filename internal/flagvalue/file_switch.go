package flagvalue

import (
	"flag"
	"io"
	"os"
)

// FileSwitch is a flag that may be passed bare ("-x")
// or with a file name ("-x=log.txt").
// Passed bare, it selects a fallback writer.
// With a file name, it writes to that file.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the file name this flag was set to,
// or "-" if it was passed bare.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the file name this flag was set to,
// or "-" if it was passed bare.
func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
// The flag package reports a bare switch as "true".
func (fs *FileSwitch) Set(v string) error {
	if v == "true" {
		*fs = "-"
		return nil
	}
	*fs = FileSwitch(v)
	return nil
}

// Create opens the destination this flag selected,
// returning a writer to it and a function that closes it.
//
//   - flag not passed: writes are discarded
//   - flag passed bare: writes go to the provided fallback
//   - flag passed with a file name: that file is created fresh
func (fs *FileSwitch) Create(fallback io.Writer) (w io.Writer, close func() error, err error) {
	name := string(*fs)
	if name == "" {
		return io.Discard, nopClose, nil
	}
	if name == "-" {
		return fallback, nopClose, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func nopClose() error { return nil }
