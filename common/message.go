package common

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Final message types, one of them ends a reconciliation run
const (
	MessageSuccess = "SUCCESS"
	MessageFailure = "FAILURE"
)

// Message types
const (
	MessageError   = "ERROR"
	MessageWarning = "WARNING"
	MessageInfo    = "INFO"
	MessageTrace   = "TRACE"
)

// MessageNoTarget is used when a message is not related to a host
const MessageNoTarget = ""

// Message is a log line produced while talking to a host
type Message struct {
	Time    time.Time `json:"time"`
	Type    string    `json:"type"`
	Target  string    `json:"target"`
	Message string    `json:"message"`
}

// NewMessage creates a new Message instance
func NewMessage(mtype string, target string, message string) *Message {
	return &Message{
		Time:    time.Now(),
		Type:    mtype,
		Target:  target,
		Message: message,
	}
}

// Print writes the message to w, with colors when w is a terminal
// (see color.NoColor)
func (message *Message) Print(w io.Writer, showTime bool, showTarget bool) {
	var c *color.Color
	switch message.Type {
	case MessageSuccess:
		c = color.New(color.FgHiGreen)
	case MessageFailure, MessageError:
		c = color.New(color.FgHiRed)
	case MessageWarning:
		c = color.New(color.FgHiYellow)
	case MessageTrace:
		c = color.New(color.FgHiBlack)
	default:
		c = color.New(color.Reset)
	}

	prefix := ""
	if showTime {
		prefix = message.Time.Format("15:04:05") + " "
	}
	if showTarget && message.Target != MessageNoTarget {
		prefix = prefix + "[" + message.Target + "] "
	}

	fmt.Fprintf(w, "%s%s\n", prefix, c.Sprintf("%s: %s", message.Type, message.Message))
}
