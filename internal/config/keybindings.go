// ABOUTME: Picker keybindings: action names mapped to Bubble Tea key strings
// ABOUTME: Defaults follow readline; the config "keys" map overrides per action

package config

import (
	"slices"
	"sort"
)

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionSelectPrev     KeyAction = "selectPrev"
	ActionSelectNext     KeyAction = "selectNext"
	ActionCursorLeft     KeyAction = "cursorLeft"
	ActionCursorRight    KeyAction = "cursorRight"
	ActionHome           KeyAction = "home"
	ActionEnd            KeyAction = "end"
	ActionDeleteBack     KeyAction = "deleteBack"
	ActionDeleteToStart  KeyAction = "deleteToStart"
	ActionDeleteToEnd    KeyAction = "deleteToEnd"
	ActionDeleteWordLeft KeyAction = "deleteWordLeft"
	ActionHistoryUp      KeyAction = "historyUp"
	ActionHistoryDown    KeyAction = "historyDown"
	ActionAccept         KeyAction = "accept"
	ActionCancel         KeyAction = "cancel"
	ActionInterrupt      KeyAction = "interrupt"
)

// Keybindings maps actions to key strings as reported by tea.KeyMsg.String().
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

// setDefaultBindings sets the readline-style defaults. "Up" walks toward
// worse matches because the list grows upward from the prompt.
func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionSelectPrev] = []string{"down"}
	kb.Bindings[ActionSelectNext] = []string{"up", "tab"}
	kb.Bindings[ActionCursorLeft] = []string{"left", "ctrl+b"}
	kb.Bindings[ActionCursorRight] = []string{"right", "ctrl+f"}
	kb.Bindings[ActionHome] = []string{"ctrl+a", "home"}
	kb.Bindings[ActionEnd] = []string{"ctrl+e", "end"}
	kb.Bindings[ActionDeleteBack] = []string{"backspace", "ctrl+h"}
	kb.Bindings[ActionDeleteToStart] = []string{"ctrl+u"}
	kb.Bindings[ActionDeleteToEnd] = []string{"ctrl+k"}
	kb.Bindings[ActionDeleteWordLeft] = []string{"ctrl+w"}
	kb.Bindings[ActionHistoryUp] = []string{"ctrl+p"}
	kb.Bindings[ActionHistoryDown] = []string{"ctrl+n"}
	kb.Bindings[ActionAccept] = []string{"enter"}
	kb.Bindings[ActionCancel] = []string{"esc"}
	kb.Bindings[ActionInterrupt] = []string{"ctrl+c"}
}

// KeybindingsFrom returns the defaults overridden by the config "keys" map.
// Unknown action names are ignored.
func KeybindingsFrom(overrides map[string][]string) *Keybindings {
	kb := NewKeybindings()
	for actionName, keys := range overrides {
		action := KeyAction(actionName)
		if _, ok := kb.Bindings[action]; ok {
			kb.Bindings[action] = slices.Clone(keys)
		}
	}
	return kb
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// Lookup returns the action bound to key. When several actions claim the
// same key the alphabetically first action wins.
func (kb *Keybindings) Lookup(key string) (KeyAction, bool) {
	if kb == nil {
		return "", false
	}
	actions := make([]string, 0, len(kb.Bindings))
	for a := range kb.Bindings {
		actions = append(actions, string(a))
	}
	sort.Strings(actions)
	for _, a := range actions {
		if slices.Contains(kb.Bindings[KeyAction(a)], key) {
			return KeyAction(a), true
		}
	}
	return "", false
}

// Index builds a key-to-action table for per-keystroke lookups.
func (kb *Keybindings) Index() map[string]KeyAction {
	idx := make(map[string]KeyAction)
	if kb == nil {
		return idx
	}
	for key := range kb.allKeys() {
		if a, ok := kb.Lookup(key); ok {
			idx[key] = a
		}
	}
	return idx
}

func (kb *Keybindings) allKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, ks := range kb.Bindings {
		for _, k := range ks {
			keys[k] = struct{}{}
		}
	}
	return keys
}
