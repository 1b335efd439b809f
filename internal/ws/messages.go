package ws

import (
	"langsync/internal/store"
)

// Commands understood by the API. store_metadata is the internal push
// channel used by the frontend script and the agent; the other two are the
// public read queries.
const (
	CmdGetAllMetadata = "frontend_translations/get_all_metadata"
	CmdGetLanguage    = "frontend_translations/get_language"
	CmdStoreMetadata  = "frontend_translations/store_metadata"
)

// Error codes mirrored into the result envelope.
const (
	ErrInvalidFormat  = "invalid_format"
	ErrUnknownCommand = "unknown_command"
	ErrStorageError   = "storage_error"
)

// CommandMessage is the client-to-server envelope: a monotonically
// increasing id chosen by the client, the command type, and the
// command-specific fields.
type CommandMessage struct {
	ID       int        `json:"id"`
	Type     string     `json:"type"`
	Language string     `json:"language,omitempty"`
	Metadata store.Blob `json:"metadata,omitempty"`
}

// ResultMessage is the server-to-client envelope. Success refers to command
// handling; a get_language lookup miss is still a successful command whose
// result carries its own success flag.
type ResultMessage struct {
	ID      int           `json:"id"`
	Type    string        `json:"type"`
	Success bool          `json:"success"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *CommandError `json:"error,omitempty"`
}

type CommandError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func resultOK(id int, result interface{}) ResultMessage {
	return ResultMessage{
		ID:      id,
		Type:    "result",
		Success: true,
		Result:  result,
	}
}

func resultError(id int, code, message string) ResultMessage {
	return ResultMessage{
		ID:      id,
		Type:    "result",
		Success: false,
		Error:   &CommandError{Code: code, Message: message},
	}
}
