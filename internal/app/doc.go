// Package app provides the application service layer.
//
// CommandService turns domain commands into channel sends; Authenticator gates
// every HTTP route. Both depend on domain contracts, not concrete adapters.
package app
