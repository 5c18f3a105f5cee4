package hub

import (
	"github.com/1broseidon/stellarhub/internal/event"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// Window is a panel the hub can frame and toggle. The hub borrows windows;
// it never closes or frees them.
type Window interface {
	Name() string
	// MinSize and MaxSize bound the content area, not the frame.
	MinSize() geometry.Size
	MaxSize() geometry.Size
	// Content returns the panel's element, built on first use and reused.
	Content() *scene.Node
	IsVisible() bool
	SetVisible(bool)
	// VisibilityChanged fires only when IsVisible actually changes.
	VisibilityChanged() *event.Event[bool]
}

// Panel is an embeddable Window implementation.
type Panel struct {
	name    string
	min     geometry.Size
	max     geometry.Size
	create  func() *scene.Node
	content *scene.Node
	hidden  bool
	changed event.Event[bool]
}

// NewPanel returns a visible panel whose content is built by create on the
// first call to Content.
func NewPanel(name string, min, max geometry.Size, create func() *scene.Node) *Panel {
	return &Panel{name: name, min: min, max: max, create: create}
}

func (p *Panel) Name() string           { return p.name }
func (p *Panel) MinSize() geometry.Size { return p.min }
func (p *Panel) MaxSize() geometry.Size { return p.max }
func (p *Panel) IsVisible() bool        { return !p.hidden }

// Built reports whether Content has created the panel's element.
func (p *Panel) Built() bool { return p.content != nil }

// VisibilityChanged implements Window.
func (p *Panel) VisibilityChanged() *event.Event[bool] { return &p.changed }

// Content builds the panel's element once and returns the cached node.
func (p *Panel) Content() *scene.Node {
	if p.content == nil {
		if p.create != nil {
			p.content = p.create()
		}
		if p.content == nil {
			p.content = scene.NewBox(p.name)
		}
	}
	return p.content
}

// SetVisible changes visibility and notifies subscribers on a transition.
func (p *Panel) SetVisible(v bool) {
	if v == p.IsVisible() {
		return
	}
	p.hidden = !v
	p.changed.Emit(v)
}
