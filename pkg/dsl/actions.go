package dsl

import (
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/registry"
)

// Action describes an action of any kind.
func Action(kind string, fields map[string]any) domain.Description {
	d := domain.Description{"type": kind}
	for k, v := range fields {
		d[k] = v
	}
	return d
}

// Wait pauses for ms milliseconds.
func Wait(ms int) domain.Description {
	return Action(registry.KindWait, map[string]any{"time": ms})
}

// Say shows a line of dialogue.
func Say(character, text string) domain.Description {
	return Action(registry.KindDialogue, map[string]any{"character": character, "text": text})
}

// Show changes an object's visibility.
func Show(object string, visible bool) domain.Description {
	return Action(registry.KindChangeVisibility, map[string]any{"object": object, "visible": visible})
}

// Play plays a sound file.
func Play(path string) domain.Description {
	return Action(registry.KindPlaySound, map[string]any{"path": path, "volume": 100})
}

// Goto jumps to a label.
func Goto(label string) domain.Description {
	return Action(registry.KindGotoLabel, map[string]any{"label": label})
}
