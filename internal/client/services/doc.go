// Package services holds the client's application services.
//
// SessionManager is the authentication state machine:
//
//	Restoring --Restore--> Anonymous | Authenticated
//	Anonymous --Login/Register/LoginWithGoogle--> Authenticated
//	Authenticated --Login/Register/LoginWithGoogle--> Authenticated (new identity)
//	Authenticated --Logout--> Anonymous
//
// Transitions run one at a time. Restore happens once, before anything else.
// A failed operation leaves both memory and the token store as they were.
package services
