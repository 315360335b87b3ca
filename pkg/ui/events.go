package ui

import (
	"github.com/chazu/ringforge/pkg/form"
	"github.com/chazu/ringforge/pkg/ring"
)

// Event is something that happened: user input or a backend response.
type Event interface{ isEvent() }

// Mounted resets the state when the view is (re)loaded.
type Mounted struct{}

// FieldChanged fires on every keystroke in a form field.
type FieldChanged struct {
	Field form.Field
	Value string
}

// PreviewRequested is the form submit. ID tags the request in logs; the
// controller assigns one when empty.
type PreviewRequested struct {
	ID string
}

type SaveRequested struct{}

type BrowseRequested struct{}

// FolderSelected carries the folder dialog outcome; an empty Path means cancel.
type FolderSelected struct {
	Path string
	Err  error
}

type PreviewLoaded struct {
	ID   string
	Mesh *ring.MeshData
	Err  error
}

// PreviewRendered reports whether the renderer accepted the mesh.
type PreviewRendered struct {
	ID  string
	Err error
}

type GenerationFinished struct {
	Result *ring.GenerationResult
	Err    error
}

// KeyPressed is a global key press, named like DOM KeyboardEvent.key.
type KeyPressed struct {
	Key  string
	Ctrl bool
}

// FullscreenToggled reports the state after a toggle. Exiting marks toggles
// made to leave fullscreen.
type FullscreenToggled struct {
	Fullscreen bool
	Exiting    bool
	Err        error
}

type Resized struct {
	Width, Height int
}

// Action is a preview toolbar button.
type Action string

const (
	ActionToggleRotate Action = "rotate"
	ActionZoomIn       Action = "zoom-in"
	ActionZoomOut      Action = "zoom-out"
	ActionReset        Action = "reset"
)

type ViewAction struct {
	Action Action
}

func (Mounted) isEvent()            {}
func (FieldChanged) isEvent()       {}
func (PreviewRequested) isEvent()   {}
func (SaveRequested) isEvent()      {}
func (BrowseRequested) isEvent()    {}
func (FolderSelected) isEvent()     {}
func (PreviewLoaded) isEvent()      {}
func (PreviewRendered) isEvent()    {}
func (GenerationFinished) isEvent() {}
func (KeyPressed) isEvent()         {}
func (FullscreenToggled) isEvent()  {}
func (Resized) isEvent()            {}
func (ViewAction) isEvent()         {}

// Command is a side effect requested by Update.
type Command interface{ isCommand() }

type RequestPreview struct {
	ID      string
	Request ring.Request
}

type RenderMesh struct {
	ID   string
	Mesh *ring.MeshData
}

type RequestGeneration struct {
	Request ring.Request
}

type OpenFolderDialog struct{}

type ToggleFullscreen struct {
	Exiting bool
}

type MaximizeWindow struct{}

// ClearPreview empties the renderer so a freshly mounted view starts blank.
type ClearPreview struct{}

type ResizeView struct {
	Width, Height int
}

type ApplyViewAction struct {
	Action Action
}

func (RequestPreview) isCommand()    {}
func (RenderMesh) isCommand()        {}
func (RequestGeneration) isCommand() {}
func (OpenFolderDialog) isCommand()  {}
func (ToggleFullscreen) isCommand()  {}
func (MaximizeWindow) isCommand()    {}
func (ClearPreview) isCommand()      {}
func (ResizeView) isCommand()        {}
func (ApplyViewAction) isCommand()   {}
