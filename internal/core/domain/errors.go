package domain

import "go.trai.ch/zerr"

var (
	// ErrTaskAlreadyExists is returned when defining a task under a name that is already taken.
	// It is a configuration error: the build definition itself is wrong.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrTaskNotFound is returned when a requested task name is not registered.
	// It is a lookup error meant to be surfaced to the user, not an internal crash.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrNoTargetsSpecified is returned when a build is requested without any target tasks.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildExecutionFailed is returned when one or more tasks failed during execution.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)
