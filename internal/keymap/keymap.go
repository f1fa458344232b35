package keymap

// Context names used to group bindings in the help screen.
const (
	ContextGlobal     = "global"
	ContextNavigation = "navigation"
	ContextResults    = "results"
	ContextDetails    = "details"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains every key binding, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionRefresh, []string{"r"}, "Rescan directory", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	// Navigation
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextNavigation},
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextNavigation},
	{ActionSwitchFocus, []string{"tab"}, "Switch pane", ContextNavigation},
	{ActionSelect, []string{"enter"}, "Open directory", ContextNavigation},
	{ActionParent, []string{"backspace", "h"}, "Parent directory", ContextNavigation},
	{ActionSearch, []string{"s"}, "Search metadata", ContextNavigation},
	{ActionManualSearch, []string{"/"}, "Search with a custom query", ContextNavigation},

	// Results
	{ActionMoveDown, []string{"j", "down"}, "Next candidate", ContextResults},
	{ActionMoveUp, []string{"k", "up"}, "Previous candidate", ContextResults},
	{ActionSelect, []string{"enter"}, "Show track listing", ContextResults},
	{ActionApply, []string{"a"}, "Apply candidate", ContextResults},
	{ActionToggleFilter, []string{"f"}, "Hide low scores", ContextResults},
	{ActionBack, []string{"esc"}, "Back to directory", ContextResults},

	// Details
	{ActionMoveDown, []string{"j", "down"}, "Scroll down", ContextDetails},
	{ActionMoveUp, []string{"k", "up"}, "Scroll up", ContextDetails},
	{ActionApply, []string{"a"}, "Apply candidate", ContextDetails},
	{ActionBack, []string{"esc"}, "Back to candidates", ContextDetails},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
