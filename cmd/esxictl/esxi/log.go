package esxi

import (
	"fmt"
	"io"

	"github.com/OnitiFR/esxictl/common"
)

// Log provides error/warning/etc helpers, messages are printed on out
type Log struct {
	target string
	out    io.Writer
	trace  bool
	time   bool
}

// NewLog creates a new log for the provided target (usually the host name)
// note: common.MessageNoTarget is an acceptable target
func NewLog(target string, out io.Writer, trace bool) *Log {
	return &Log{
		target: target,
		out:    out,
		trace:  trace,
	}
}

// Log is a low-level function for printing a Message
func (log *Log) Log(message *common.Message) {
	if log == nil {
		return
	}
	message.Target = log.target

	if message.Type == common.MessageTrace && !log.trace {
		return
	}
	message.Print(log.out, log.time, true)
}

// Error prints a MessageError Message
func (log *Log) Error(message string) {
	log.Log(common.NewMessage(common.MessageError, log.targetName(), message))
}

// Errorf prints a formated string MessageError Message
func (log *Log) Errorf(format string, args ...interface{}) {
	log.Error(fmt.Sprintf(format, args...))
}

// Warning prints a MessageWarning Message
func (log *Log) Warning(message string) {
	log.Log(common.NewMessage(common.MessageWarning, log.targetName(), message))
}

// Warningf prints a formated string MessageWarning Message
func (log *Log) Warningf(format string, args ...interface{}) {
	log.Warning(fmt.Sprintf(format, args...))
}

// Info prints an MessageInfo Message
func (log *Log) Info(message string) {
	log.Log(common.NewMessage(common.MessageInfo, log.targetName(), message))
}

// Infof prints a formated string MessageInfo Message
func (log *Log) Infof(format string, args ...interface{}) {
	log.Info(fmt.Sprintf(format, args...))
}

// Trace prints an MessageTrace Message
func (log *Log) Trace(message string) {
	log.Log(common.NewMessage(common.MessageTrace, log.targetName(), message))
}

// Tracef prints a formated string MessageTrace Message
func (log *Log) Tracef(format string, args ...interface{}) {
	log.Trace(fmt.Sprintf(format, args...))
}

// Success prints an MessageSuccess Message
func (log *Log) Success(message string) {
	log.Log(common.NewMessage(common.MessageSuccess, log.targetName(), message))
}

// Successf prints a formated string MessageSuccess Message
func (log *Log) Successf(format string, args ...interface{}) {
	log.Success(fmt.Sprintf(format, args...))
}

// Failure prints an MessageFailure Message
func (log *Log) Failure(message string) {
	log.Log(common.NewMessage(common.MessageFailure, log.targetName(), message))
}

// Failuref prints a formated string MessageFailure Message
func (log *Log) Failuref(format string, args ...interface{}) {
	log.Failure(fmt.Sprintf(format, args...))
}

// SetTarget changes the current target
func (log *Log) SetTarget(target string) {
	log.target = target
}

// SetTime enables timestamps on messages
func (log *Log) SetTime(show bool) {
	log.time = show
}

func (log *Log) targetName() string {
	if log == nil {
		return common.MessageNoTarget
	}
	return log.target
}
