package domain

// ActionBody is the kind-specific part of an action. The scene core only ever
// sees it through this contract; concrete kinds live in an action catalog.
type ActionBody interface {
	// Kind returns the action type name written under the "type" key.
	Kind() string
	// Describe returns the serialized form, including the "type" key.
	Describe() Description
}
