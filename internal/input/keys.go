// Package input turns key presses from a local keyboard into slideshow
// commands.
package input

import (
	"errors"

	"github.com/wesellis/WeatherStar-4000-Python/internal/engine"
)

// ErrUnsupported is returned by Run on platforms without evdev.
var ErrUnsupported = errors.New("keyboard input is only supported on linux")

// AutoDevice asks Run to pick the first device that looks like a keyboard.
const AutoDevice = "auto"

// Sink receives commands.
type Sink interface {
	Submit(engine.Command) bool
}

// Key is a key the slideshow reacts to.
type Key int

const (
	KeyEscape Key = iota + 1
	KeyQ
	KeySpace
	KeyRight
	KeyLeft
	KeyM
	KeyR
	// Key1 through Key9 are consecutive.
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Command maps a key to its command.
func Command(k Key) (engine.Command, bool) {
	switch {
	case k == KeyEscape:
		return engine.Command{Kind: engine.CmdEscape}, true
	case k == KeyQ:
		return engine.Command{Kind: engine.CmdQuit}, true
	case k == KeySpace:
		return engine.Command{Kind: engine.CmdTogglePause}, true
	case k == KeyRight:
		return engine.Command{Kind: engine.CmdNext}, true
	case k == KeyLeft:
		return engine.Command{Kind: engine.CmdPrevious}, true
	case k == KeyM:
		return engine.Command{Kind: engine.CmdToggleMenu}, true
	case k == KeyR:
		return engine.Command{Kind: engine.CmdRefresh}, true
	case k >= Key1 && k <= Key9:
		return engine.Command{Kind: engine.CmdDigit, Digit: int(k-Key1) + 1}, true
	}
	return engine.Command{}, false
}
