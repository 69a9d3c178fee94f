// Package session implements the simulated user journey: register a new
// account, then log in with the email and with the username of a user the
// same session registered earlier.
//
// Outcomes are classified from the response body alone. A registration
// succeeds when the body's msg field equals "User Registered"; a login
// succeeds when the body carries a token key. HTTP status codes do not
// participate in classification, matching the application under test.
//
// Login scenarios skip (without issuing a request) until the session has
// registered at least one user.
package session
