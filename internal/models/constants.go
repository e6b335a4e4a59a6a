// Package models contains data types and constants for the Hot Mess Coach chat client.
package models

// Backend defaults
const (
	// DefaultBaseURL is the local development address of the chat backend.
	DefaultBaseURL = "http://localhost:8000"

	// ChatPath is appended to the configured base URL.
	ChatPath = "/chat"

	// DefaultUserAgent identifies the client to the backend.
	DefaultUserAgent = "hotmess/0.1"
)

// Fixed assistant texts. None of them depend on the backend.
const (
	Greeting = "Hey there! I'm your Hot Mess Coach! Ready to turn your chaos into... slightly organized chaos? Let's chat!"

	// FallbackReply is used when the backend answers without a reply field.
	FallbackReply = "Sorry, I got a bit confused there!"

	// ConnectivityTroubleReply is used for every failed request.
	ConnectivityTroubleReply = "Oops! Looks like I'm having trouble connecting. Let me try again in a moment!"
)

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   DefaultUserAgent,
	}
}
