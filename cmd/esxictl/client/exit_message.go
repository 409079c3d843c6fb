package client

import (
	"fmt"
	"io"
)

// ExitMessage is displayed during client exit
type ExitMessage struct {
	Disabled bool
	Message  string
}

var globalExitMessage ExitMessage

// InitExitMessage resets global ExitMessage
func InitExitMessage() {
	globalExitMessage = ExitMessage{}
}

// GetExitMessage return a pointer to the global ExitMessage
func GetExitMessage() *ExitMessage {
	return &globalExitMessage
}

// Disable global ExitMessage (for machine-readable outputs)
func (em *ExitMessage) Disable() {
	em.Disabled = true
}

// Append adds a line to the message
func (em *ExitMessage) Append(format string, args ...interface{}) {
	em.Message += fmt.Sprintf(format, args...) + "\n"
}

// Display global ExitMessage on w
func (em *ExitMessage) Display(w io.Writer) {
	if em.Disabled || em.Message == "" {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, em.Message)
}
