// Package cli is the interactive LocalBoost client.
//
// Start-up mirrors the mobile app: a splash screen waits for the session
// restore, then the user lands on the home screen (signed in), the login
// prompt (returning user) or the onboarding slides (first run). After that a
// small REPL takes over:
//
//   - register / signup: create an account (name, email, phone, password)
//   - login: sign in with email and password
//   - google: sign in with a Google ID token
//   - me / home: show the profile
//   - logout, help, exit
//
// Forms are checked locally before anything is sent. Server errors are shown
// as short messages; details go to the debug log.
package cli
