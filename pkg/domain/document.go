package domain

// Document is the persisted form of a project: the resource library and the
// scenes built from it.
type Document struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name,omitempty" yaml:"name,omitempty"`
	Width     int           `json:"width,omitempty" yaml:"width,omitempty"`
	Height    int           `json:"height,omitempty" yaml:"height,omitempty"`
	Resources []Description `json:"resources,omitempty" yaml:"resources,omitempty"`
	Scenes    []Description `json:"scenes,omitempty" yaml:"scenes,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Resources = cloneList(d.Resources)
	out.Scenes = cloneList(d.Scenes)
	return &out
}

func cloneList(in []Description) []Description {
	if in == nil {
		return nil
	}
	out := make([]Description, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
