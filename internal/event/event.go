// Package event defines the AgentEvent vocabulary every adapter parses
// its agent's raw output into. The variant set is closed: the screen
// reader and the JSON-lines adapters all produce values of this one type,
// tagged by Kind. Shaped after the teacher's own event envelope
// (monitor.AgentEvent{Type, Timestamp, Data}), but with the vocabulary
// this subsystem actually needs.
package event

import "time"

// Kind is the closed set of AgentEvent tags.
type Kind string

const (
	Ready             Kind = "ready"
	Output            Kind = "output"
	Message           Kind = "message"
	Thinking          Kind = "thinking"
	ToolStart         Kind = "tool-start"
	ToolEnd           Kind = "tool-end"
	CommandRun        Kind = "command-run"
	PermissionRequest Kind = "permission-request"
	Question          Kind = "question"
	Error             Kind = "error"
	TaskComplete      Kind = "task-complete"
)

// Event is one value in a session's ordered event stream. Events are
// copied, not shared, across subscribers.
type Event struct {
	Kind      Kind
	Timestamp time.Time
	Data      any
}

// Payload types, one per Kind that carries data. Kinds with no payload
// (Ready, TaskComplete) carry a nil Data.

type OutputData struct {
	Text string
}

type MessageData struct {
	Text string
}

type ThinkingData struct {
	Text string
}

type ToolStartData struct {
	Tool  string
	Input any
}

type ToolEndData struct {
	Tool   string
	Output any
}

type CommandRunData struct {
	Command string
}

type PermissionRequestData struct {
	Tool    string
	Details string
}

type QuestionData struct {
	Text string
}

type ErrorData struct {
	Text string
}

// New builds an Event stamped with the current time.
func New(kind Kind, data any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Data: data}
}

func NewReady() Event        { return New(Ready, nil) }
func NewTaskComplete() Event { return New(TaskComplete, nil) }
func NewOutput(s string) Event  { return New(Output, OutputData{Text: s}) }
func NewMessage(s string) Event { return New(Message, MessageData{Text: s}) }
func NewThinking(s string) Event {
	return New(Thinking, ThinkingData{Text: s})
}
func NewToolStart(tool string, input any) Event {
	return New(ToolStart, ToolStartData{Tool: tool, Input: input})
}
func NewToolEnd(tool string, output any) Event {
	return New(ToolEnd, ToolEndData{Tool: tool, Output: output})
}
func NewCommandRun(command string) Event {
	return New(CommandRun, CommandRunData{Command: command})
}
func NewPermissionRequest(tool, details string) Event {
	return New(PermissionRequest, PermissionRequestData{Tool: tool, Details: details})
}
func NewQuestion(s string) Event { return New(Question, QuestionData{Text: s}) }
func NewError(s string) Event    { return New(Error, ErrorData{Text: s}) }
