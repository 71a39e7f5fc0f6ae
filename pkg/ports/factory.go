package ports

import "github.com/aretw0/tableau/pkg/domain"

// ActionFactory builds action bodies from their serialized description.
// The scene core never knows concrete action kinds; it only asks a factory.
type ActionFactory interface {
	// NewAction returns a fresh body for the description's "type".
	// Returns domain.ErrUnknownKind when the kind is not supported.
	NewAction(desc domain.Description) (domain.ActionBody, error)
}

// ActionFactoryFunc adapts a plain function to ActionFactory.
type ActionFactoryFunc func(desc domain.Description) (domain.ActionBody, error)

// NewAction calls f(desc).
func (f ActionFactoryFunc) NewAction(desc domain.Description) (domain.ActionBody, error) {
	return f(desc)
}
