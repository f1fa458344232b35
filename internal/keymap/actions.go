// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit    Action = "quit"
	ActionHelp    Action = "help"
	ActionRefresh Action = "refresh"

	// Navigation actions
	ActionMoveUp      Action = "move_up"
	ActionMoveDown    Action = "move_down"
	ActionSwitchFocus Action = "switch_focus"
	ActionSelect      Action = "select" // enter - open directory or candidate
	ActionBack        Action = "back"   // esc
	ActionParent      Action = "parent"

	// Metadata actions
	ActionSearch       Action = "search"        // s - search from file tags
	ActionManualSearch Action = "manual_search" // / - free-form query
	ActionApply        Action = "apply"
	ActionToggleFilter Action = "toggle_filter"
)
