package domain

// Kind tags a scene entity with its concrete type.
type Kind string

const (
	KindObject      Kind = "Object"
	KindImage       Kind = "Image"
	KindTextBox     Kind = "TextBox"
	KindButton      Kind = "Button"
	KindCharacter   Kind = "Character"
	KindDialogueBox Kind = "DialogueBox"
	KindObjectGroup Kind = "ObjectGroup"
	KindMenu        Kind = "Menu"
)

var kinds = map[Kind]bool{
	KindObject:      true,
	KindImage:       true,
	KindTextBox:     true,
	KindButton:      true,
	KindCharacter:   true,
	KindDialogueBox: true,
	KindObjectGroup: true,
	KindMenu:        true,
}

// Valid reports whether k belongs to the enumeration.
func (k Kind) Valid() bool {
	return kinds[k]
}

// IsGroup reports whether entities of this kind hold child entities.
func (k Kind) IsGroup() bool {
	return k == KindObjectGroup || k == KindMenu
}

// Kinds returns every known kind, groups last.
func Kinds() []Kind {
	return []Kind{
		KindObject, KindImage, KindTextBox, KindButton,
		KindCharacter, KindDialogueBox, KindObjectGroup, KindMenu,
	}
}
