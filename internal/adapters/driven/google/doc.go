// Package google binds the calendar capability to Google Calendar v3 and
// holds the OAuth plumbing shared with the Gmail email transport.
//
// Credentials follow the installed-app flow: an OAuth client JSON from the
// Google console plus a token file written by "screener google login".
// Refreshed tokens are written back to the token file.
package google
