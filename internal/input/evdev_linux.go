//go:build linux

package input

import (
	"context"
	"errors"
	"fmt"
	"strings"

	evdev "github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

var keyCodes = map[evdev.EvCode]Key{
	evdev.KEY_ESC:   KeyEscape,
	evdev.KEY_Q:     KeyQ,
	evdev.KEY_SPACE: KeySpace,
	evdev.KEY_RIGHT: KeyRight,
	evdev.KEY_LEFT:  KeyLeft,
	evdev.KEY_M:     KeyM,
	evdev.KEY_R:     KeyR,
	evdev.KEY_1:     Key1,
	evdev.KEY_2:     Key2,
	evdev.KEY_3:     Key3,
	evdev.KEY_4:     Key4,
	evdev.KEY_5:     Key5,
	evdev.KEY_6:     Key6,
	evdev.KEY_7:     Key7,
	evdev.KEY_8:     Key8,
	evdev.KEY_9:     Key9,
}

func findKeyboard() (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p.Name), "keyboard") {
			return p.Path, nil
		}
	}
	return "", errors.New("no keyboard input device found")
}

// Run reads key presses from device until ctx is done. device may be
// AutoDevice.
func Run(ctx context.Context, device string, sink Sink, log *zap.SugaredLogger) error {
	if device == AutoDevice {
		p, err := findKeyboard()
		if err != nil {
			return err
		}
		device = p
	}

	kbd, err := evdev.Open(device)
	if err != nil {
		return fmt.Errorf("open %s: %w", device, err)
	}
	name, _ := kbd.Name()
	log.Infow("using input device", "path", device, "name", name)

	go func() {
		<-ctx.Done()
		kbd.Close()
	}()

	for {
		ev, err := kbd.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read %s: %w", device, err)
		}
		// Presses only; releases and autorepeat are ignored.
		if ev.Type != evdev.EV_KEY || ev.Value != 1 {
			continue
		}
		k, ok := keyCodes[ev.Code]
		if !ok {
			continue
		}
		if cmd, ok := Command(k); ok {
			log.Debugw("key pressed", "key", ev.CodeName(), "command", cmd.Kind.String())
			sink.Submit(cmd)
		}
	}
}
