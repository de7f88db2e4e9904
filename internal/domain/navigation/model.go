package navigation

// Screen identifies which view is displayed.
type Screen string

const (
	ScreenList     Screen = "list"
	ScreenCreate   Screen = "create"
	ScreenDetail   Screen = "detail"
	ScreenEdit     Screen = "edit"
	ScreenNotFound Screen = "not_found"
)

// State is the current screen. ResourceID is set only for Detail and Edit.
type State struct {
	Screen     Screen `json:"screen"`
	ResourceID string `json:"resource_id,omitempty"`
}

// Initial returns the state every session starts in.
func Initial() State {
	return State{Screen: ScreenList}
}

// Is reports whether the state is the given screen for the given resource.
func (s State) Is(screen Screen, id string) bool {
	return s.Screen == screen && s.ResourceID == id
}

// IntentKind names a user navigation intent.
type IntentKind string

const (
	GoHome   IntentKind = "go_home"
	GoCreate IntentKind = "go_create"
	GoDetail IntentKind = "go_detail"
	GoEdit   IntentKind = "go_edit"
	// GoUnknown is produced by Parse for paths that match no screen.
	GoUnknown IntentKind = "go_unknown"
)

// Intent is a request to move to another screen.
type Intent struct {
	Kind IntentKind
	ID   string
}

// Home returns the GoHome intent.
func Home() Intent { return Intent{Kind: GoHome} }

// Create returns the GoCreate intent.
func Create() Intent { return Intent{Kind: GoCreate} }

// Detail returns the GoDetail intent for a record.
func Detail(id string) Intent { return Intent{Kind: GoDetail, ID: id} }

// Edit returns the GoEdit intent for a record.
func Edit(id string) Intent { return Intent{Kind: GoEdit, ID: id} }
