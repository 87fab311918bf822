package game

import "encoding/json"

// ResponseType tags which dispatch branch produced a response.
type ResponseType string

const (
	TypePlayerInitialized ResponseType = "playerInitialized"
	TypeAwakening         ResponseType = "awakening"
	TypeScanning          ResponseType = "scanning"
	TypeHelp              ResponseType = "help"
	TypeStatus            ResponseType = "status"
	TypeExamining         ResponseType = "examining"
	TypeHacking           ResponseType = "hacking"
	TypeExploring         ResponseType = "exploring"
	TypeError             ResponseType = "error"
)

// Response is the result of initializing a session or dispatching a command.
// Each implementation carries only the fields its branch uses.
type Response interface {
	Type() ResponseType
	Text() string
	Suggestions() []string
}

// PlayerInitialized is returned by Initialize.
type PlayerInitialized struct {
	Narrative string   `json:"narrative"`
	Actions   []string `json:"actions"`
}

func (r PlayerInitialized) Type() ResponseType    { return TypePlayerInitialized }
func (r PlayerInitialized) Text() string          { return r.Narrative }
func (r PlayerInitialized) Suggestions() []string { return r.Actions }

func (r PlayerInitialized) MarshalJSON() ([]byte, error) {
	type alias PlayerInitialized
	return json.Marshal(struct {
		Type ResponseType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

// Narrative is the response of a known command.
type Narrative struct {
	Kind              ResponseType `json:"-"`
	Body              string       `json:"narrative"`
	AvailableCommands []string     `json:"availableCommands"`
}

func (r Narrative) Type() ResponseType    { return r.Kind }
func (r Narrative) Text() string          { return r.Body }
func (r Narrative) Suggestions() []string { return r.AvailableCommands }

func (r Narrative) MarshalJSON() ([]byte, error) {
	type alias Narrative
	return json.Marshal(struct {
		Type ResponseType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

// UnknownCommand is returned for any input that is not in the command table.
// Command holds the trimmed input with its original case.
type UnknownCommand struct {
	Command           string   `json:"command"`
	Narrative         string   `json:"narrative"`
	AvailableCommands []string `json:"availableCommands"`
}

func (r UnknownCommand) Type() ResponseType    { return TypeError }
func (r UnknownCommand) Text() string          { return r.Narrative }
func (r UnknownCommand) Suggestions() []string { return r.AvailableCommands }

func (r UnknownCommand) MarshalJSON() ([]byte, error) {
	type alias UnknownCommand
	return json.Marshal(struct {
		Type ResponseType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}

// NotInitialized is returned for every command sent before Initialize.
type NotInitialized struct {
	Narrative string `json:"narrative"`
}

func (r NotInitialized) Type() ResponseType    { return TypeError }
func (r NotInitialized) Text() string          { return r.Narrative }
func (r NotInitialized) Suggestions() []string { return nil }

func (r NotInitialized) MarshalJSON() ([]byte, error) {
	type alias NotInitialized
	return json.Marshal(struct {
		Type ResponseType `json:"type"`
		alias
	}{r.Type(), alias(r)})
}
