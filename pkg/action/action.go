package action

import "time"

// Kind identifies one of the closed set of scripted operations. The set is
// fixed at compile time; adding a kind means adding an effect for it.
type Kind string

const (
	KindShowDialogue   Kind = "show_dialogue"
	KindHideDialogue   Kind = "hide_dialogue"
	KindShowMessage    Kind = "show_message"
	KindTriggerEvent   Kind = "trigger_event"
	KindPickItem       Kind = "pick_item"
	KindDiscardItem    Kind = "discard_item"
	KindChangeAgeGroup Kind = "change_age_group"
	KindLoadLevel      Kind = "load_level"
	KindScreenShake    Kind = "screen_shake"
)

// Kinds lists every known action kind, for content validation.
var Kinds = []Kind{
	KindShowDialogue,
	KindHideDialogue,
	KindShowMessage,
	KindTriggerEvent,
	KindPickItem,
	KindDiscardItem,
	KindChangeAgeGroup,
	KindLoadLevel,
	KindScreenShake,
}

// Action is a single scripted operation. It is a tagged union: Kind selects
// which payload fields are meaningful. Actions are content data, read-only
// at runtime.
type Action struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// WaitForInput suspends the sequence after this action until the
	// player confirms.
	WaitForInput bool `json:"wait_for_input,omitempty" yaml:"wait_for_input,omitempty"`

	// WaitAfter is the pause after this action, in seconds. Zero means
	// the executor default.
	WaitAfter float64 `json:"wait_after,omitempty" yaml:"wait_after,omitempty"`

	// show_dialogue
	Actor    string `json:"actor,omitempty" yaml:"actor,omitempty"`
	Line     string `json:"line,omitempty" yaml:"line,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"` // "left" or "right"

	// show_message
	Message      string  `json:"message,omitempty" yaml:"message,omitempty"`
	Duration     float64 `json:"duration,omitempty" yaml:"duration,omitempty"` // seconds
	AfterMessage string  `json:"after_message,omitempty" yaml:"after_message,omitempty"`

	// trigger_event
	Event string `json:"event,omitempty" yaml:"event,omitempty"`

	// pick_item, discard_item
	Item string `json:"item,omitempty" yaml:"item,omitempty"`

	// change_age_group
	AgeGroup string `json:"age_group,omitempty" yaml:"age_group,omitempty"`

	// load_level
	Level       string `json:"level,omitempty" yaml:"level,omitempty"`
	FadeOverlay bool   `json:"fade_overlay,omitempty" yaml:"fade_overlay,omitempty"`
}

// WaitAfterDuration returns the configured pause as a duration.
func (a Action) WaitAfterDuration() time.Duration {
	return time.Duration(a.WaitAfter * float64(time.Second))
}

// Sequence is an ordered list of actions executed as one unit of narrative
// progression. Sequences are owned by content and never mutated at runtime.
type Sequence struct {
	Name    string   `json:"name" yaml:"name"`
	Actions []Action `json:"actions" yaml:"actions"`
}
