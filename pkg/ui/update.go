package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chazu/ringforge/pkg/form"
)

// NotAvailable fills success fields the backend left empty.
const NotAvailable = "N/A"

// Update applies ev to s. It performs no I/O; side effects are returned as
// commands.
func Update(s State, ev Event) (State, []Command) {
	switch ev := ev.(type) {
	case Mounted:
		return Initial(), []Command{ClearPreview{}}

	case FieldChanged:
		return fieldChanged(s, ev), nil

	case PreviewRequested:
		v, err := validate(s)
		if err != nil {
			s.Preview.Loading = false
			s.Result = errorResult(err.Error())
			return s, nil
		}
		s.Preview.Visible = true
		s.Preview.Loading = true
		s.Preview.ActionVisible = false
		s.Preview.Error = ""
		s.Preview.RequestID = ev.ID
		s.Preview.Dimensions = fmt.Sprintf("%smm × %smm", num(v.OuterDiameter), num(v.InnerDiameter))
		return s, []Command{RequestPreview{ID: ev.ID, Request: v.Request(nil)}}

	case PreviewLoaded:
		if ev.Err != nil {
			return previewFailed(s, ev.Err), nil
		}
		return s, []Command{RenderMesh{ID: ev.ID, Mesh: ev.Mesh}}

	case PreviewRendered:
		if ev.Err != nil {
			return previewFailed(s, ev.Err), nil
		}
		s.Preview.Loading = false
		s.Preview.Error = ""
		s.Preview.ActionVisible = true
		return s, nil

	case SaveRequested:
		v, err := validate(s)
		if err != nil {
			s.Result = errorResult(err.Error())
			return s, nil
		}
		s.Result = Result{Panel: PanelLoading}
		var out *string
		if s.OutputPath != "" {
			path := s.OutputPath
			out = &path
		}
		return s, []Command{RequestGeneration{Request: v.Request(out)}}

	case GenerationFinished:
		switch {
		case ev.Err != nil:
			s.Result = errorResult(fmt.Sprintf("Failed to generate ring: %v", ev.Err))
		case ev.Result == nil:
			s.Result = errorResult("Failed to generate ring: empty response")
		case !ev.Result.Success:
			s.Result = errorResult(ev.Result.Message)
		default:
			s.Result = Result{
				Panel:    PanelSuccess,
				Message:  ev.Result.Message,
				Filename: orNA(ev.Result.Filename),
				FilePath: orNA(ev.Result.FilePath),
			}
		}
		return s, nil

	case BrowseRequested:
		return s, []Command{OpenFolderDialog{}}

	case FolderSelected:
		if ev.Err != nil {
			s.Result = errorResult(fmt.Sprintf("Failed to open file dialog: %v", ev.Err))
			return s, nil
		}
		if ev.Path != "" {
			s.OutputPath = ev.Path
		}
		return s, nil

	case KeyPressed:
		switch {
		case ev.Key == "F11":
			return s, []Command{ToggleFullscreen{}}
		case ev.Ctrl && (ev.Key == "m" || ev.Key == "M"):
			return s, []Command{MaximizeWindow{}}
		case ev.Key == "Escape":
			return s, []Command{ToggleFullscreen{Exiting: true}}
		}
		return s, nil

	case FullscreenToggled:
		// Still fullscreen after an exit toggle: toggle once more.
		if ev.Err == nil && ev.Exiting && ev.Fullscreen {
			return s, []Command{ToggleFullscreen{}}
		}
		return s, nil

	case Resized:
		return s, []Command{ResizeView{Width: ev.Width, Height: ev.Height}}

	case ViewAction:
		return s, []Command{ApplyViewAction{Action: ev.Action}}
	}
	return s, nil
}

func fieldChanged(s State, ev FieldChanged) State {
	switch ev.Field {
	case form.FieldRingType:
		s.Form.RingType = ev.Value
		return s
	case form.FieldOuterDiameter:
		s.Form.Outer = ev.Value
		if outer := form.ParseDiameter(ev.Value); !math.IsNaN(outer) && !math.IsInf(outer, 0) {
			s.Form.InnerMax = num(form.InnerMax(outer))
		}
	case form.FieldInnerDiameter:
		s.Form.Inner = ev.Value
	default:
		return s
	}

	_, err := validate(s)
	if ev.Field == form.FieldOuterDiameter {
		s.Form.OuterInvalid = err != nil
	} else {
		s.Form.InnerInvalid = err != nil
	}
	return s
}

func validate(s State) (form.Values, error) {
	return form.ValidateText(s.Form.RingType, s.Form.Outer, s.Form.Inner)
}

func previewFailed(s State, err error) State {
	s.Preview.Loading = false
	s.Preview.ActionVisible = false
	s.Preview.Error = fmt.Sprintf("Failed to generate 3D preview: %v", err)
	return s
}

func errorResult(msg string) Result {
	return Result{Panel: PanelError, Message: msg}
}

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// num formats like a JavaScript number: 23, 12.5.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
