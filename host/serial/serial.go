package serial

import "io"

// Port is the serial connection to a device emitting trace frames.
// The abstraction keeps the CLI testable with an in-memory
// implementation.
type Port interface {
	io.ReadWriteCloser

	// Flush discards or forces out any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (ignored by USB CDC devices)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration the trace CLI uses unless
// overridden by flags.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
