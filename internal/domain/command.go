package domain

import (
	"fmt"
	"strconv"
)

// ButtonCount is the number of hardware keys on the display.
const ButtonCount = 4

// Command is one message in the renderer's command vocabulary.
// The set of implementations is closed; the unexported marker keeps other
// packages from adding variants.
type Command interface {
	// Wire returns the exact string written to the message channel.
	Wire() string
	// Label is the short name shown to users in status messages.
	Label() string
	// Action is the stable action name used for routing, logging and metrics.
	Action() string

	command()
}

type (
	Next     struct{}
	Previous struct{}
	Reload   struct{}

	Button struct {
		index int
	}

	SetScreen struct {
		screen ScreenName
	}
	AddScreen struct {
		screen ScreenName
	}
	RemoveScreen struct {
		screen ScreenName
	}
)

// NewButton returns the command for hardware key index (0-based).
func NewButton(index int) (Button, error) {
	if index < 0 || index >= ButtonCount {
		return Button{}, fmt.Errorf("%w: %d", ErrInvalidButton, index)
	}
	return Button{index: index}, nil
}

func NewSetScreen(name ScreenName) Command    { return SetScreen{screen: name} }
func NewAddScreen(name ScreenName) Command    { return AddScreen{screen: name} }
func NewRemoveScreen(name ScreenName) Command { return RemoveScreen{screen: name} }

func (Next) Wire() string     { return "next" }
func (Previous) Wire() string { return "previous" }
func (Reload) Wire() string   { return "reload" }
func (b Button) Wire() string { return "button" + strconv.Itoa(b.index) }

func (c SetScreen) Wire() string    { return "screen " + c.screen.String() }
func (c AddScreen) Wire() string    { return "add_screen " + c.screen.String() }
func (c RemoveScreen) Wire() string { return "remove_screen " + c.screen.String() }

func (Next) Label() string     { return "next" }
func (Previous) Label() string { return "previous" }
func (Reload) Label() string   { return "reload" }

// Label uses the key names printed on the display (KEY1..KEY4).
func (b Button) Label() string { return "KEY" + strconv.Itoa(b.index+1) }

func (SetScreen) Label() string    { return "screen" }
func (AddScreen) Label() string    { return "add_screen" }
func (RemoveScreen) Label() string { return "remove_screen" }

func (Next) Action() string         { return "next" }
func (Previous) Action() string     { return "previous" }
func (Reload) Action() string       { return "reload" }
func (b Button) Action() string     { return b.Wire() }
func (SetScreen) Action() string    { return "screen" }
func (AddScreen) Action() string    { return "add_screen" }
func (RemoveScreen) Action() string { return "remove_screen" }

func (Next) command()         {}
func (Previous) command()     {}
func (Reload) command()       {}
func (Button) command()       {}
func (SetScreen) command()    {}
func (AddScreen) command()    {}
func (RemoveScreen) command() {}

// ParseCommand builds a command from its action name. Screen actions take the
// screen name as arg and validate it; the other actions ignore arg.
func ParseCommand(action, arg string) (Command, error) {
	switch action {
	case "next":
		return Next{}, nil
	case "previous":
		return Previous{}, nil
	case "reload":
		return Reload{}, nil
	case "button0", "button1", "button2", "button3":
		index, _ := strconv.Atoi(action[len("button"):])
		return NewButton(index)
	case "screen", "add_screen", "remove_screen":
		name, err := ParseScreenName(arg)
		if err != nil {
			return nil, err
		}
		switch action {
		case "screen":
			return NewSetScreen(name), nil
		case "add_screen":
			return NewAddScreen(name), nil
		default:
			return NewRemoveScreen(name), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
