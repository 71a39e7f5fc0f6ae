package scene

import (
	"reflect"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// identityKeys are never copied from a resource onto its clones.
var identityKeys = []string{"x", "y", "name", "visible", "sync", "resource"}

// nodeFields is the decoded form of the keys a plain node reads.
type nodeFields struct {
	Name              *string         `mapstructure:"name"`
	X                 *int            `mapstructure:"x"`
	Y                 *int            `mapstructure:"y"`
	Width             any             `mapstructure:"width"`
	Height            any             `mapstructure:"height"`
	Opacity           *int            `mapstructure:"opacity"`
	Visible           *bool           `mapstructure:"visible"`
	BackgroundColor   any             `mapstructure:"backgroundColor"`
	BackgroundOpacity *int            `mapstructure:"backgroundOpacity"`
	BackgroundImage   *string         `mapstructure:"backgroundImage"`
	CornerRadius      *int            `mapstructure:"cornerRadius"`
	BorderWidth       *int            `mapstructure:"borderWidth"`
	BorderColor       any             `mapstructure:"borderColor"`
	Padding           *domain.Padding `mapstructure:"padding"`
	Sync              *bool           `mapstructure:"sync"`
}

// decodeLenient decodes desc into out. When the whole description does not
// decode, keys are retried one at a time so a single bad value only drops
// itself.
func decodeLenient(desc domain.Description, out any, reset func()) []string {
	if err := decodeInto(desc, out); err == nil {
		return nil
	}
	reset()
	var bad []string
	for k, v := range desc {
		if err := decodeInto(domain.Description{k: v}, out); err != nil {
			bad = append(bad, k)
		}
	}
	return bad
}

func decodeInto(desc domain.Description, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(desc))
}

// Describe serializes the node. Keys whose value equals the resource's are
// left out and the resource name is recorded instead.
func (n *Node) Describe() domain.Description {
	if n.group != nil {
		return n.group.Describe()
	}
	return n.describe()
}

func (n *Node) describe() domain.Description {
	d := n.describeOwn()
	n.filterResourceData(d)
	return d
}

func (n *Node) describeOwn() domain.Description {
	d := domain.Description{
		"name":              n.name,
		"type":              string(n.kind),
		"x":                 n.x,
		"y":                 n.y,
		"width":             n.width.Encode(),
		"height":            n.height.Encode(),
		"opacity":           n.opacity,
		"backgroundColor":   n.bgColor.Values(),
		"backgroundOpacity": n.bgOpacity,
		"visible":           n.visible,
		"sync":              n.link.synced,
	}
	if n.cornerRadius != 0 {
		d["cornerRadius"] = n.cornerRadius
	}
	if n.bgImage != "" {
		d["backgroundImage"] = n.bgImage
	}
	if n.padding != (domain.Padding{}) {
		d["padding"] = n.padding.Map()
	}
	if n.borderWidth > 0 {
		d["borderWidth"] = n.borderWidth
	}
	if n.hasBorderColor {
		d["borderColor"] = n.borderColor.Values()
	}
	for _, ch := range domain.Channels {
		list := n.actions.list(ch)
		if len(list) == 0 {
			continue
		}
		items := make([]any, len(list))
		for i, a := range list {
			items[i] = map[string]any(a.Describe())
		}
		d[ch.Key()] = items
	}
	return d
}

func (n *Node) filterResourceData(d domain.Description) {
	res := n.Resource()
	if res == nil {
		return
	}
	rd := res.Describe()
	for k, v := range d {
		if rv, ok := rd[k]; ok && reflect.DeepEqual(rv, v) {
			delete(d, k)
		}
	}
	d["resource"] = res.name
}

// Load applies every known key of desc with notifications blocked. Unknown
// keys and values of the wrong shape are ignored.
func (n *Node) Load(desc domain.Description) {
	if n.group != nil {
		n.group.Load(desc)
		return
	}
	n.load(desc)
}

func (n *Node) load(desc domain.Description) {
	if len(desc) == 0 {
		return
	}
	blocked := n.BlockNotifications(true)
	defer n.BlockNotifications(blocked)

	var f nodeFields
	if bad := decodeLenient(desc, &f, func() { f = nodeFields{} }); len(bad) > 0 {
		n.reg.logger.Debug("ignored malformed keys", "node", n.name, "keys", bad)
	}

	if f.Name != nil && *f.Name != "" {
		n.name = *f.Name
	}
	if f.Padding != nil {
		n.SetPadding(*f.Padding)
	}
	if f.Opacity != nil {
		n.SetOpacity(*f.Opacity)
	}
	if f.BackgroundColor != nil {
		if c, err := domain.ParseColor(f.BackgroundColor); err == nil {
			n.SetBackgroundColor(c)
		}
	}
	if f.BackgroundOpacity != nil {
		n.SetBackgroundOpacity(*f.BackgroundOpacity)
	}
	if f.BackgroundImage != nil {
		n.SetBackgroundImage(*f.BackgroundImage)
	}
	if f.X != nil {
		n.SetX(*f.X)
	}
	if f.Y != nil {
		n.SetY(*f.Y)
	}
	if s, ok := domain.ParseSize(f.Width); ok && f.Width != nil {
		n.setWidth(s.Value, s.Percent)
	}
	if s, ok := domain.ParseSize(f.Height); ok && f.Height != nil {
		n.setHeight(s.Value, s.Percent)
	}
	if f.CornerRadius != nil {
		n.SetCornerRadius(*f.CornerRadius)
	}
	if f.Visible != nil {
		n.SetVisible(*f.Visible)
	}
	if f.BorderWidth != nil {
		n.SetBorderWidth(*f.BorderWidth)
	}
	if f.BorderColor != nil {
		if c, err := domain.ParseColor(f.BorderColor); err == nil {
			n.SetBorderColor(c)
		}
	}
	if f.Sync != nil {
		n.SetSynced(*f.Sync)
	}
	n.loadActions(desc)
}

// loadActions replaces the lists of every channel key present in desc.
func (n *Node) loadActions(desc domain.Description) {
	for _, ch := range domain.Channels {
		items, ok := desc.List(ch.Key())
		if !ok {
			continue
		}
		list := make([]*Action, 0, len(items))
		for _, item := range items {
			a, err := n.reg.NewAction(item, n.id)
			if err != nil {
				n.reg.logger.Debug("skipped action", "node", n.name, "channel", ch.String(), "err", err)
				continue
			}
			list = append(list, a)
		}
		for _, old := range n.actions.replace(ch, list) {
			if old.OwnedBy(n.id) {
				old.Destroy()
			} else {
				old.released.emit(old)
			}
		}
	}
}

// applyResourceData loads resource values, skipping identity keys.
func (n *Node) applyResourceData(desc domain.Description) {
	n.Load(desc.Without(identityKeys...))
}

func (n *Node) onResourceChanged(ev domain.ChangeEvent) {
	if !n.IsSynced() {
		return
	}
	n.applyResourceData(ev.Data())
}
