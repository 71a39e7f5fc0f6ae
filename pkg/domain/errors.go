package domain

import "errors"

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownKind is returned when a description names an entity or action kind
// that no factory knows how to build.
var ErrUnknownKind = errors.New("unknown kind")

// ErrInvalidDescription is returned when a description cannot be decoded.
var ErrInvalidDescription = errors.New("invalid description")

// ErrNameTaken is returned when a name is already used inside its owning scope.
var ErrNameTaken = errors.New("name already taken")

// ErrResourceNotFound is returned when a description references a missing resource.
var ErrResourceNotFound = errors.New("resource not found")
