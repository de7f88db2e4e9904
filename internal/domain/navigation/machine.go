package navigation

import (
	"fmt"
	"strings"
)

// Apply moves from the current state according to the intent. On error the
// current state is returned unchanged.
func Apply(current State, intent Intent) (State, error) {
	if current.Screen == ScreenNotFound && intent.Kind != GoHome {
		return current, ErrTerminal
	}

	switch intent.Kind {
	case GoHome:
		return State{Screen: ScreenList}, nil
	case GoCreate:
		return State{Screen: ScreenCreate}, nil
	case GoDetail:
		if intent.ID == "" {
			return current, ErrMissingID
		}
		return State{Screen: ScreenDetail, ResourceID: intent.ID}, nil
	case GoEdit:
		if intent.ID == "" {
			return current, ErrMissingID
		}
		return State{Screen: ScreenEdit, ResourceID: intent.ID}, nil
	case GoUnknown:
		return State{Screen: ScreenNotFound}, nil
	default:
		return current, fmt.Errorf("%w: %s", ErrUnknownIntent, intent.Kind)
	}
}

// Resolve applies the implicit redirects that depend on the record store.
// An Edit screen whose record is absent from a loaded store falls back to
// List. A Detail screen is left alone and renders its own not-found message.
func Resolve(current State, exists func(id string) bool, loaded bool) State {
	if current.Screen == ScreenEdit && loaded && !exists(current.ResourceID) {
		return State{Screen: ScreenList}
	}
	return current
}

// Parse maps a location path to an intent. Unmatched paths produce GoUnknown.
func Parse(path string) Intent {
	path = strings.TrimSpace(path)
	switch {
	case path == "/" || path == "":
		return Home()
	case path == "/create":
		return Create()
	}
	if id, ok := strings.CutPrefix(path, "/recipe/"); ok && validSegment(id) {
		return Detail(id)
	}
	if id, ok := strings.CutPrefix(path, "/edit/"); ok && validSegment(id) {
		return Edit(id)
	}
	return Intent{Kind: GoUnknown}
}

// Path is the inverse of Parse for every reachable state.
func Path(s State) string {
	switch s.Screen {
	case ScreenCreate:
		return "/create"
	case ScreenDetail:
		return "/recipe/" + s.ResourceID
	case ScreenEdit:
		return "/edit/" + s.ResourceID
	case ScreenNotFound:
		return "/404"
	default:
		return "/"
	}
}

func validSegment(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}
