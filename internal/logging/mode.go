package logging

type Mode uint8

const (
	// ModeCLI is the maintenance CLI; it logs to stderr and stays quiet.
	ModeCLI Mode = iota + 1
	// ModeEngine is the embedded layout/session engine inside a host
	// application; it logs structured JSON to a rotated file.
	ModeEngine
)

func (m Mode) String() string {
	switch m {
	case ModeEngine:
		return "engine"
	default:
		return "cli"
	}
}
