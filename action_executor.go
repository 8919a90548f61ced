package main

// ActionExecutor maps action names to InputActions commands.
// It is the single place keyboard actions turn into viewer commands.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action. Returns false for unknown actions.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "toggle_zoom":
		inputActions.ToggleZoom()
	case "cancel_zoom":
		// Escape only means something while zoomed
		if !inputActions.IsZoomed() {
			return false
		}
		inputActions.CancelZoom()
	case "jump_first":
		inputActions.JumpToPage(1)
	case "jump_last":
		inputActions.JumpToPage(inputActions.GetTotalPagesCount())
	default:
		return false
	}

	return true
}
