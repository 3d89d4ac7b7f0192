// Package domain defines the command vocabulary understood by the epdtext renderer
// and the contracts the rest of the application builds on.
//
// Screen names are validated on construction (ParseScreenName) and commands form a
// closed set: only the variants in this package implement Command.
package domain
