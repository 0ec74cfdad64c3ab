// Package users owns LocalBoost accounts: the users table, password and
// Google sign-in, and resolving an access token back to its account.
package users
