// Package repository contains data access logic separated from HTTP handlers.
// Every repository wraps a *sql.DB and issues parameterised SQL; rows that do
// not exist are reported through the sentinel errors below so handlers can
// map them to HTTP status codes with errors.Is.
package repository

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrAdvertisementNotFound = errors.New("advertisement not found")
	ErrChatNotFound          = errors.New("chat not found")
)

// ErrEmailExists is returned when an insert or update collides with the
// unique email index of USERS or ORGANIZATIONS.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when an operation cannot proceed because of the
// row's current state, such as checking in a ticket that was already used.
var ErrConflict = errors.New("conflict")
