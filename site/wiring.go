package site

import "fmt"

// Element ids the index page and the wiring script agree on.
const (
	TriggerID  = "stateSelectorButton"
	SelectorID = "stateSelector"
	FrameID    = "googleMapBox"
)

// Element is anything on a rendered page that is addressable by a stable id.
type Element interface {
	ElementID() string
}

// Button is a clickable trigger element.
type Button struct {
	id      string
	onClick func()
}

// NewButton returns a button with the given id and no click handler.
func NewButton(id string) *Button {
	return &Button{id: id}
}

// ElementID returns the button's id.
func (b *Button) ElementID() string { return b.id }

// Click runs the bound click handler. A click on an unbound button does
// nothing, like in the hosting environment.
func (b *Button) Click() {
	if b.onClick != nil {
		b.onClick()
	}
}

// Selector is a dropdown exposing one chosen value out of a fixed option set.
type Selector struct {
	id      string
	options []string
	value   string
}

// NewSelector returns a selector with the given options. Like an HTML select,
// the first option starts out chosen.
func NewSelector(id string, options ...string) *Selector {
	s := &Selector{id: id, options: options}
	if len(options) > 0 {
		s.value = options[0]
	}
	return s
}

// ElementID returns the selector's id.
func (s *Selector) ElementID() string { return s.id }

// Value returns the currently chosen option.
func (s *Selector) Value() string { return s.value }

// Options returns the selector's option set.
func (s *Selector) Options() []string {
	result := make([]string, len(s.options))
	copy(result, s.options)
	return result
}

// Select chooses the given option. Values outside the option set are
// rejected, so a selector generated from the known state pages can never feed
// an arbitrary string into the content frame.
func (s *Selector) Select(v string) error {
	for _, opt := range s.options {
		if opt == v {
			s.value = v
			return nil
		}
	}
	return fmt.Errorf("%q is not an option of selector %q", v, s.id)
}

// Frame is the embedded content area whose source determines what is
// rendered.
type Frame struct {
	id  string
	src string
}

// NewFrame returns a frame with the given id and an empty source.
func NewFrame(id string) *Frame {
	return &Frame{id: id}
}

// ElementID returns the frame's id.
func (f *Frame) ElementID() string { return f.id }

// Src returns the frame's current source.
func (f *Frame) Src() string { return f.src }

// Document is the set of addressable elements of a rendered page.
type Document struct {
	elements map[string]Element
}

// NewDocument builds a document from the given elements. Duplicate ids are an
// error.
func NewDocument(els ...Element) (*Document, error) {
	d := &Document{elements: make(map[string]Element, len(els))}
	for _, el := range els {
		id := el.ElementID()
		if _, ok := d.elements[id]; ok {
			return nil, fmt.Errorf("duplicate element id %q", id)
		}
		d.elements[id] = el
	}
	return d, nil
}

// Element returns the element with the given id, or a descriptive error when
// it is absent.
func (d *Document) Element(id string) (Element, error) {
	el, ok := d.elements[id]
	if !ok {
		return nil, fmt.Errorf("no element with id %q in the document", id)
	}
	return el, nil
}

// Bind attaches the click handler to the trigger: on every click, the
// selector's current value is assigned to the frame's source. The handles are
// passed in explicitly and checked up front, so a broken page fails here with
// a clear error instead of faulting on the first click.
func Bind(trigger *Button, selector *Selector, frame *Frame) error {
	if trigger == nil {
		return fmt.Errorf("cannot bind a nil trigger button")
	}
	if selector == nil {
		return fmt.Errorf("cannot bind a nil selector")
	}
	if frame == nil {
		return fmt.Errorf("cannot bind a nil content frame")
	}

	trigger.onClick = func() {
		frame.src = selector.Value()
	}
	return nil
}

// WireIndex looks up the index page's trigger button, state selector and
// content frame by their well-known ids and binds them together.
func WireIndex(doc *Document) error {
	el, err := doc.Element(TriggerID)
	if err != nil {
		return err
	}
	trigger, ok := el.(*Button)
	if !ok {
		return fmt.Errorf("element %q is not a button", TriggerID)
	}

	el, err = doc.Element(SelectorID)
	if err != nil {
		return err
	}
	selector, ok := el.(*Selector)
	if !ok {
		return fmt.Errorf("element %q is not a selector", SelectorID)
	}

	el, err = doc.Element(FrameID)
	if err != nil {
		return err
	}
	frame, ok := el.(*Frame)
	if !ok {
		return fmt.Errorf("element %q is not a content frame", FrameID)
	}

	return Bind(trigger, selector, frame)
}
