/*
Package server implements msgpack IPC for the wordrank suggestion engine.

The protocol is a synchronous request/response exchange over stdin/stdout
using binary msgpack encoding. Every message carries an ID that the response
echoes back.

A completion request holds the prefix and an optional result limit:

	{"id": "req_001", "p": "app", "l": 24}

The server answers with suggestions ranked by weight, heaviest first:

	{"id": "req_001", "s": [{"w": "apple", "r": 1, "f": 5}, {"w": "appliance", "r": 2, "f": 4}], "c": 2, "t": 0}

Messages without a prefix are control requests, discriminated by action.
"add_word" feeds a word into the index at runtime (weights accumulate across
repeated adds of the same word), "stats" reports index counters, and
"set_limits" updates the server's prefix/limit bounds and persists them to
the config file:

	{"id": "w_001", "action": "add_word", "word": "apple", "weight": 3}
	{"id": "s_001", "action": "stats"}
	{"id": "c_001", "action": "set_limits", "max_limit": 32}

Malformed or failed requests produce an error message with a status code
instead of a response body. The server never exits on a bad request; only a
closed stdin ends the loop.
*/
package server

// Request is the single incoming message shape. A non-empty Prefix marks a
// completion request; otherwise Action selects a control operation.
type Request struct {
	ID     string `msgpack:"id"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`

	Action string `msgpack:"action,omitempty"`
	Word   string `msgpack:"word,omitempty"`
	Weight int    `msgpack:"weight,omitempty"`

	MaxLimit  *int `msgpack:"max_limit,omitempty"`
	MinPrefix *int `msgpack:"min_prefix,omitempty"`
	MaxPrefix *int `msgpack:"max_prefix,omitempty"`
}

// ResponseSuggestion - single ranked suggestion
type ResponseSuggestion struct {
	Word   string `msgpack:"w"`
	Rank   uint16 `msgpack:"r"`
	Weight int    `msgpack:"f,omitempty"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string               `msgpack:"id"`
	Suggestions []ResponseSuggestion `msgpack:"s"`
	Count       int                  `msgpack:"c"`
	TimeTaken   int64                `msgpack:"t"`
}

// StatusResponse - control operation response
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
