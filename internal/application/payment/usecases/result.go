package usecases

// Result is what the admin UI receives for a payment action.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func successResult() Result {
	return Result{Success: true}
}

func failureResult(message string) Result {
	return Result{Success: false, Message: message}
}
