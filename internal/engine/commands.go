package engine

import (
	"fmt"

	"github.com/wesellis/WeatherStar-4000-Python/internal/pages"
	"github.com/wesellis/WeatherStar-4000-Python/internal/settings"
)

// Kind identifies a command.
type Kind int

const (
	CmdNext Kind = iota + 1
	CmdPrevious
	// CmdJump shows the page at Index.
	CmdJump
	CmdTogglePause
	CmdToggleMenu
	// CmdEscape closes the menu, or quits when it is closed.
	CmdEscape
	CmdQuit
	CmdRefresh
	// CmdDigit toggles menu entry Digit while the menu is open and jumps to
	// page Digit otherwise.
	CmdDigit
	// CmdApplySettings replaces the display preferences with Display.
	CmdApplySettings
)

var kindNames = map[Kind]string{
	CmdNext:          "next",
	CmdPrevious:      "previous",
	CmdJump:          "jump",
	CmdTogglePause:   "toggle",
	CmdToggleMenu:    "settings",
	CmdEscape:        "escape",
	CmdQuit:          "quit",
	CmdRefresh:       "refresh",
	CmdDigit:         "digit",
	CmdApplySettings: "apply-settings",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a command name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// Command is one user action.
type Command struct {
	Kind    Kind
	Index   int
	Digit   int
	Display settings.Display
}

func (e *Engine) handle(cmd Command) error {
	switch cmd.Kind {
	case CmdNext:
		e.ctrl.Next()
	case CmdPrevious:
		e.ctrl.Previous()
	case CmdJump:
		if !e.ctrl.Jump(cmd.Index) {
			e.log.Debugw("jump ignored", "index", cmd.Index)
		}
	case CmdTogglePause:
		on := e.ctrl.ToggleAutoAdvance()
		e.log.Infow("play/pause toggled", "playing", on)
	case CmdToggleMenu:
		e.setMenu(!e.menu())
	case CmdEscape:
		if !e.menu() {
			e.log.Infow("escape pressed")
			return ErrQuit
		}
		e.setMenu(false)
	case CmdQuit:
		e.log.Infow("quit requested")
		return ErrQuit
	case CmdRefresh:
		e.setMenu(false)
		if e.refresh != nil {
			go e.refresh()
		}
	case CmdDigit:
		if e.menu() {
			e.mu.RLock()
			d := e.display
			e.mu.RUnlock()
			if d.Toggle(cmd.Digit) {
				e.applyDisplay(d)
			}
		} else {
			e.ctrl.Jump(cmd.Digit - 1)
		}
	case CmdApplySettings:
		e.applyDisplay(cmd.Display)
	default:
		e.log.Warnw("unknown command", "command", cmd.Kind.String())
	}
	return nil
}

func (e *Engine) menu() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.menuOpen
}

func (e *Engine) setMenu(open bool) {
	e.mu.Lock()
	changed := e.menuOpen != open
	e.menuOpen = open
	e.mu.Unlock()
	if changed {
		e.log.Infow("settings menu", "open", open)
	}
}

// applyDisplay rebuilds the rotation for d, drops animation state of pages
// that left it and persists d.
func (e *Engine) applyDisplay(d settings.Display) {
	e.mu.Lock()
	e.display = d
	e.mu.Unlock()

	active := e.deps.Registry.Active(d)
	e.ctrl.RebuildPages(active)
	e.deps.Anim.Prune(pages.Strings(active))
	e.log.Infow("display settings applied", "pages", pages.Strings(active))

	e.persist(d)
}

// persist writes d in the background. Only the newest of overlapping writes
// reaches the file.
func (e *Engine) persist(d settings.Display) {
	if e.saver == nil {
		return
	}
	e.saveSeq++
	seq := e.saveSeq
	e.saves.Add(1)
	go func() {
		defer e.saves.Done()
		e.saveMu.Lock()
		defer e.saveMu.Unlock()
		if seq < e.savedSeq {
			return
		}
		if err := e.saver.SaveDisplay(d); err != nil {
			e.log.Warnw("failed to save settings", "error", err)
			return
		}
		e.savedSeq = seq
	}()
}
