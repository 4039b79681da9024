// Package ctl implements nutricarectl, the operator CLI that runs
// migrations and manages accounts directly against the database.
package ctl
