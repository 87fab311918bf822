package game

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

type command struct {
	name        string
	kind        ResponseType
	narrative   string
	suggestions []string
}

// commandTable lists every command with a dispatch branch, in help order.
var commandTable = []command{
	{"wake up", TypeAwakening, awakeningText, []string{"scan environment", "help", "status"}},
	{"scan environment", TypeScanning, scanningText, []string{"examine data", "access terminal", "move forward"}},
	{"examine data", TypeExamining, examiningText, []string{"generate module", "access terminal", "scan environment"}},
	{"access terminal", TypeHacking, hackingText, []string{"compile fragments", "contribute module", "disconnect"}},
	{"move forward", TypeExploring, exploringText, []string{"explore nexus", "scan environment", "examine data"}},
	{"status", TypeStatus, statusText, []string{"scan environment", "help"}},
	{"help", TypeHelp, helpText, []string{"wake up", "scan environment", "status"}},
}

var commandIndex = func() map[string]command {
	idx := make(map[string]command, len(commandTable))
	for _, c := range commandTable {
		idx[c.name] = c
	}
	return idx
}()

var (
	initialActions = []string{"wake up", "help", "status"}
	unknownActions = []string{"help", "scan environment"}
)

// NormalizeCommand trims surrounding whitespace and case-folds the input.
func NormalizeCommand(raw string) string {
	return cases.Fold().String(strings.TrimSpace(raw))
}

// KnownCommands returns the commands that have a dispatch branch.
func KnownCommands() []string {
	names := make([]string, 0, len(commandTable))
	for _, c := range commandTable {
		names = append(names, c.name)
	}
	return names
}

// Initialize marks the session as initialized and returns the welcome response.
// Calling it again leaves the session initialized and returns the same response.
func Initialize(s *Session) Response {
	s.Initialized = true
	return PlayerInitialized{
		Narrative: initializedText,
		Actions:   slices.Clone(initialActions),
	}
}

// Dispatch maps one command to its response. It never modifies the session:
// only Initialize changes session state.
func Dispatch(s Session, raw string) Response {
	if !s.Initialized {
		return NotInitialized{Narrative: notInitializedText}
	}

	if c, ok := commandIndex[NormalizeCommand(raw)]; ok {
		return Narrative{
			Kind:              c.kind,
			Body:              c.narrative,
			AvailableCommands: slices.Clone(c.suggestions),
		}
	}

	trimmed := strings.TrimSpace(raw)
	return UnknownCommand{
		Command:           trimmed,
		Narrative:         fmt.Sprintf(unknownCommandFormat, trimmed),
		AvailableCommands: slices.Clone(unknownActions),
	}
}
