package worktree

import (
	"github.com/google/uuid"
)

// InteractorID identifies an interactor.
type InteractorID string

// InteractorStatus tells whether an interactor is taking input.
type InteractorStatus int

const (
	Active InteractorStatus = iota
	Inactive
)

// String returns "active" or "inactive".
func (s InteractorStatus) String() string {
	if s == Inactive {
		return "inactive"
	}
	return "active"
}

// Interactor is a cursor or selection: a main anchor plus an optional
// selection anchor marking the other end of the selection.
type Interactor struct {
	id        InteractorID
	main      AnchorID
	selection AnchorID
	status    InteractorStatus
	name      string
	hint      float64
	hasHint   bool
}

// ID returns the interactor id.
func (in *Interactor) ID() InteractorID { return in.id }

// Main returns the main anchor.
func (in *Interactor) Main() AnchorID { return in.main }

// Selection returns the selection anchor.
func (in *Interactor) Selection() (AnchorID, bool) { return in.selection, in.selection != "" }

// Status returns the status.
func (in *Interactor) Status() InteractorStatus { return in.status }

// Name returns the name.
func (in *Interactor) Name() string { return in.name }

// Hint returns the remembered horizontal position for vertical movement.
func (in *Interactor) Hint() (float64, bool) { return in.hint, in.hasHint }

// InteractorSpec describes a new interactor.
type InteractorSpec struct {
	Main      AnchorSpec
	Selection *AnchorSpec
	Status    InteractorStatus
	Name      string
}

// InteractorUpdate lists the changes to apply to an interactor. Nil fields
// are left alone.
type InteractorUpdate struct {
	Main           *AnchorSpec
	Selection      *AnchorSpec
	ClearSelection bool
	Status         *InteractorStatus
	Name           *string
	Hint           *float64
	ClearHint      bool
}

// AddInteractor creates an interactor and its anchors.
func (t *Tree) AddInteractor(s InteractorSpec) (*Interactor, error) {
	const op = "add interactor"
	mainSpec, err := t.resolveAnchorSpec(op, s.Main)
	if err != nil {
		return nil, err
	}
	var selSpec *AnchorSpec
	if s.Selection != nil {
		spec, err := t.resolveAnchorSpec(op, *s.Selection)
		if err != nil {
			return nil, err
		}
		selSpec = &spec
	}

	in := &Interactor{id: InteractorID(uuid.NewString()), status: s.Status, name: s.Name}
	main := t.addAnchor(mainSpec)
	main.interactor = in.id
	in.main = main.id
	t.anchorEvent(TopicAnchorAdded, main)
	if selSpec != nil {
		sel := t.addAnchor(*selSpec)
		sel.interactor = in.id
		in.selection = sel.id
		t.anchorEvent(TopicAnchorAdded, sel)
	}
	t.interactors[in.id] = in
	t.interactorEvent(TopicInteractorAdded, in)
	return in, nil
}

// UpdateInteractor applies u to an interactor.
func (t *Tree) UpdateInteractor(id InteractorID, u InteractorUpdate) error {
	const op = "update interactor"
	in, ok := t.interactors[id]
	if !ok {
		return lookupf(op, "unknown interactor %s", id)
	}
	var mainSpec, selSpec *AnchorSpec
	if u.Main != nil {
		spec, err := t.resolveAnchorSpec(op, *u.Main)
		if err != nil {
			return err
		}
		mainSpec = &spec
	}
	if u.Selection != nil {
		spec, err := t.resolveAnchorSpec(op, *u.Selection)
		if err != nil {
			return err
		}
		selSpec = &spec
	}

	// Moving an interactor keeps the names of its anchors.
	if mainSpec != nil {
		a := t.anchors[in.main]
		t.retarget(a, *mainSpec)
		t.anchorEvent(TopicAnchorUpdated, a)
	}
	switch {
	case selSpec != nil && in.selection != "":
		a := t.anchors[in.selection]
		t.retarget(a, *selSpec)
		t.anchorEvent(TopicAnchorUpdated, a)
	case selSpec != nil:
		sel := t.addAnchor(*selSpec)
		sel.interactor = in.id
		in.selection = sel.id
		t.anchorEvent(TopicAnchorAdded, sel)
	case u.ClearSelection && in.selection != "":
		t.removeAnchor(t.anchors[in.selection])
		in.selection = ""
	}
	if u.Status != nil {
		in.status = *u.Status
	}
	if u.Name != nil {
		in.name = *u.Name
	}
	if u.Hint != nil {
		in.hint, in.hasHint = *u.Hint, true
	}
	if u.ClearHint {
		in.hint, in.hasHint = 0, false
	}
	t.interactorEvent(TopicInteractorUpdated, in)
	return nil
}

// DeleteInteractor removes an interactor and its anchors.
func (t *Tree) DeleteInteractor(id InteractorID) error {
	in, ok := t.interactors[id]
	if !ok {
		return lookupf("delete interactor", "unknown interactor %s", id)
	}
	if a, ok := t.anchors[in.selection]; ok {
		t.removeAnchor(a)
	}
	if a, ok := t.anchors[in.main]; ok {
		t.removeAnchor(a)
	}
	delete(t.interactors, id)
	t.interactorEvent(TopicInteractorDeleted, in)
	return nil
}

// MoveInteractorVertically moves the main anchor of an interactor to the
// adjacent visual line using the layout oracle. The horizontal goal is
// remembered on the interactor so repeated moves keep their column. It
// reports false when there is no line in that direction or no layout.
func (t *Tree) MoveInteractorVertically(id InteractorID, forward bool) (bool, error) {
	const op = "move interactor"
	in, ok := t.interactors[id]
	if !ok {
		return false, lookupf(op, "unknown interactor %s", id)
	}
	nav, err := t.NavigatorFor(in.main)
	if err != nil {
		return false, err
	}
	var hint *float64
	if in.hasHint {
		hint = &in.hint
	}
	goal, moved := nav.ToVerticalNeighbor(forward, hint)
	if !moved {
		return false, nil
	}
	spec, err := t.AnchorFromCursor(nav.Cursor())
	if err != nil {
		return false, err
	}
	return true, t.UpdateInteractor(id, InteractorUpdate{Main: &spec, Hint: &goal})
}
