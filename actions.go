package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all keyboard actions with default keybindings and descriptions
var actionDefinitions = []ActionDefinition{
	{"previous", []string{"ArrowLeft"}, "Previous page"},
	{"next", []string{"ArrowRight"}, "Next page"},
	{"cancel_zoom", []string{"Escape"}, "Leave zoom (only while zoomed)"},
	{"toggle_zoom", []string{"KeyZ"}, "Toggle zoom"},
	{"jump_first", []string{"Home"}, "Jump to first page"},
	{"jump_last", []string{"End"}, "Jump to last page"},
	{"exit", []string{"KeyQ"}, "Quit viewer"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keys := make([]string, len(action.Keys))
		copy(keys, action.Keys)
		keybindings[action.Name] = keys
	}
	return keybindings
}
