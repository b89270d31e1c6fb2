// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagegrid

package ui

import (
	"sort"
	"sync"

	"github.com/derailed/tcell/v2"
)

// Rune keys are folded into tcell keys so a single map serves both.
const (
	KeySlash  tcell.Key = '/'
	KeyHelp   tcell.Key = '?'
	KeyG      tcell.Key = 'g'
	KeyH      tcell.Key = 'h'
	KeyJ      tcell.Key = 'j'
	KeyK      tcell.Key = 'k'
	KeyL      tcell.Key = 'l'
	KeyQ      tcell.Key = 'q'
	KeyS      tcell.Key = 's'
	KeyW      tcell.Key = 'w'
	KeyShiftG tcell.Key = 'G'
)

var keyNames = map[tcell.Key]string{
	KeySlash:  "/",
	KeyHelp:   "?",
	KeyShiftG: "Shift-G",
}

// KeyName returns a display name for a key.
func KeyName(k tcell.Key) string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if n, ok := tcell.KeyNames[k]; ok {
		return n
	}

	return string(rune(k))
}

// AsKey folds a rune event into a key.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}

	return tcell.Key(evt.Rune())
}

// ActionHandler handles a keyboard event.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
	Shared      bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible}
}

// NewSharedKeyAction returns an action shared by several views.
func NewSharedKeyAction(d string, a ActionHandler, visible bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: visible, Shared: true}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks the actions bound to a view.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns a new instance.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Get fetches an action for a key.
func (a *KeyActions) Get(key tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[key]

	return v, ok
}

// Len returns the number of bound actions.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Add binds an action.
func (a *KeyActions) Add(k tcell.Key, action KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = action
}

// Bulk binds several actions.
func (a *KeyActions) Bulk(aa KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range aa {
		a.actions[k] = v
	}
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Clear unbinds all keys.
func (a *KeyActions) Clear() {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions = make(KeyMap)
}

// Hints returns the menu hints for the bound actions.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		act := a.actions[k]
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: act.Description,
			Visible:     act.Visible,
		})
	}

	return hh
}

// Handle runs the action bound to the event key, if any.
func (a *KeyActions) Handle(evt *tcell.EventKey) (*tcell.EventKey, bool) {
	act, ok := a.Get(AsKey(evt))
	if !ok || act.Action == nil {
		return evt, false
	}

	return act.Action(evt), true
}
