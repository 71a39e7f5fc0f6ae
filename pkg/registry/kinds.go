package registry

import (
	"maps"

	"github.com/aretw0/tableau/pkg/domain"
)

// Built-in action kinds.
const (
	KindDialogue         = "Dialogue"
	KindWait             = "Wait"
	KindChangeVisibility = "ChangeVisibility"
	KindPlaySound        = "PlaySound"
	KindGotoLabel        = "GotoLabel"
	KindChangeBackground = "ChangeBackground"
)

func builtins() map[string]Constructor {
	return map[string]Constructor{
		KindDialogue:         func() domain.ActionBody { return &Dialogue{} },
		KindWait:             func() domain.ActionBody { return &Wait{} },
		KindChangeVisibility: func() domain.ActionBody { return &ChangeVisibility{} },
		KindPlaySound:        func() domain.ActionBody { return &PlaySound{} },
		KindGotoLabel:        func() domain.ActionBody { return &GotoLabel{} },
		KindChangeBackground: func() domain.ActionBody { return &ChangeBackground{} },
	}
}

// Common fields every action kind shares.
type Common struct {
	Name    string `mapstructure:"name"`
	Enabled *bool  `mapstructure:"enabled"`
	// Extra keeps keys the kind does not model.
	Extra map[string]any `mapstructure:",remain"`
}

func (c Common) describe(kind string) domain.Description {
	d := domain.Description{}
	maps.Copy(d, c.Extra)
	d["type"] = kind
	if c.Name != "" {
		d["name"] = c.Name
	}
	if c.Enabled != nil {
		d["enabled"] = *c.Enabled
	}
	return d
}

// Dialogue shows a line of text, optionally spoken by a character.
type Dialogue struct {
	Common    `mapstructure:",squash"`
	Character string `mapstructure:"character"`
	Text      string `mapstructure:"text"`
	Append    bool   `mapstructure:"append"`
}

func (a *Dialogue) Kind() string { return KindDialogue }

func (a *Dialogue) Describe() domain.Description {
	d := a.describe(KindDialogue)
	d["character"] = a.Character
	d["text"] = a.Text
	d["append"] = a.Append
	return d
}

// Wait pauses the story for a duration or until the player clicks.
type Wait struct {
	Common   `mapstructure:",squash"`
	Time     int    `mapstructure:"time"`
	WaitType string `mapstructure:"waitType"`
}

func (a *Wait) Kind() string { return KindWait }

func (a *Wait) Describe() domain.Description {
	d := a.describe(KindWait)
	d["time"] = a.Time
	if a.WaitType != "" {
		d["waitType"] = a.WaitType
	}
	return d
}

// Transition configures how a visibility change is animated.
type Transition struct {
	Type      string `mapstructure:"type"`
	Duration  int    `mapstructure:"duration"`
	Direction string `mapstructure:"direction"`
}

// ChangeVisibility shows or hides a scene object, optionally animated.
type ChangeVisibility struct {
	Common     `mapstructure:",squash"`
	Object     string      `mapstructure:"object"`
	Visible    bool        `mapstructure:"visible"`
	Transition *Transition `mapstructure:"transition"`
}

func (a *ChangeVisibility) Kind() string { return KindChangeVisibility }

func (a *ChangeVisibility) Describe() domain.Description {
	d := a.describe(KindChangeVisibility)
	d["object"] = a.Object
	d["visible"] = a.Visible
	if a.Transition != nil {
		t := map[string]any{"type": a.Transition.Type, "duration": a.Transition.Duration}
		if a.Transition.Direction != "" {
			t["direction"] = a.Transition.Direction
		}
		d["transition"] = t
	}
	return d
}

// Fade returns the transition when it is a fade.
func (a *ChangeVisibility) Fade() (*Transition, bool) {
	return a.transitionOf("Fade")
}

// Slide returns the transition when it is a slide.
func (a *ChangeVisibility) Slide() (*Transition, bool) {
	return a.transitionOf("Slide")
}

func (a *ChangeVisibility) transitionOf(kind string) (*Transition, bool) {
	if a.Transition == nil || a.Transition.Type != kind {
		return nil, false
	}
	return a.Transition, true
}

// PlaySound plays an audio file.
type PlaySound struct {
	Common `mapstructure:",squash"`
	Path   string `mapstructure:"path"`
	Volume int    `mapstructure:"volume"`
	Loop   bool   `mapstructure:"loop"`
}

func (a *PlaySound) Kind() string { return KindPlaySound }

func (a *PlaySound) Describe() domain.Description {
	d := a.describe(KindPlaySound)
	d["path"] = a.Path
	d["volume"] = a.Volume
	d["loop"] = a.Loop
	return d
}

// GotoLabel jumps to a named label, possibly in another scene.
type GotoLabel struct {
	Common `mapstructure:",squash"`
	Label  string `mapstructure:"label"`
	Scene  string `mapstructure:"scene"`
}

func (a *GotoLabel) Kind() string { return KindGotoLabel }

func (a *GotoLabel) Describe() domain.Description {
	d := a.describe(KindGotoLabel)
	d["label"] = a.Label
	if a.Scene != "" {
		d["scene"] = a.Scene
	}
	return d
}

// ChangeBackground swaps the scene's background image.
type ChangeBackground struct {
	Common `mapstructure:",squash"`
	Image  string `mapstructure:"image"`
}

func (a *ChangeBackground) Kind() string { return KindChangeBackground }

func (a *ChangeBackground) Describe() domain.Description {
	d := a.describe(KindChangeBackground)
	d["image"] = a.Image
	return d
}

// AsDialogue returns the body as a Dialogue when it is one.
func AsDialogue(body domain.ActionBody) (*Dialogue, bool) {
	a, ok := body.(*Dialogue)
	return a, ok
}

// AsVisibilityChange returns the body as a ChangeVisibility when it is one.
func AsVisibilityChange(body domain.ActionBody) (*ChangeVisibility, bool) {
	a, ok := body.(*ChangeVisibility)
	return a, ok
}
