// Package ui is the front-end controller. Update is a pure function from
// (State, Event) to (State, []Command); Controller runs it on a single
// dispatcher goroutine and carries out the commands against the backend
// bridge and the preview renderer.
package ui

// Panel is the visible result panel. The panels are mutually exclusive.
type Panel int

const (
	PanelNone Panel = iota
	PanelLoading
	PanelSuccess
	PanelError
)

func (p Panel) String() string {
	switch p {
	case PanelNone:
		return "none"
	case PanelLoading:
		return "loading"
	case PanelSuccess:
		return "success"
	case PanelError:
		return "error"
	}
	return "unknown"
}

// MarshalText lets the front end see panel names instead of numbers.
func (p Panel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// FormState holds the raw field text and per-field error markers.
type FormState struct {
	RingType     string `json:"ringType"`
	Outer        string `json:"outer"`
	Inner        string `json:"inner"`
	InnerMax     string `json:"innerMax"`
	OuterInvalid bool   `json:"outerInvalid"`
	InnerInvalid bool   `json:"innerInvalid"`
}

// Result is the save/validation outcome panel.
type Result struct {
	Panel    Panel  `json:"panel"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	FilePath string `json:"filePath"`
}

// PreviewState is the preview panel. It stays hidden until the first
// preview request.
type PreviewState struct {
	Visible       bool   `json:"visible"`
	Loading       bool   `json:"loading"`
	ActionVisible bool   `json:"actionVisible"`
	Error         string `json:"error"`
	Dimensions    string `json:"dimensions"`
	RequestID     string `json:"requestId"`
}

// State is the whole front-end state.
type State struct {
	Form       FormState    `json:"form"`
	OutputPath string       `json:"outputPath"`
	Result     Result       `json:"result"`
	Preview    PreviewState `json:"preview"`
}

// Initial is the state of a freshly mounted view.
func Initial() State {
	return State{}
}
