package session

import "github.com/s22625/lazyq/internal/protocol"

// Selection identifies the currently focused tree item: either a group
// header or a specific task. It survives snapshot replacement and is
// reconciled against the new tree after every refresh.
type Selection struct {
	Kind   ItemKind
	Group  string
	TaskID int
}

// SelectGroup focuses a group header.
func SelectGroup(name string) Selection {
	return Selection{Kind: ItemGroup, Group: name}
}

// SelectTask focuses a task within a group.
func SelectTask(group string, id int) Selection {
	return Selection{Kind: ItemTask, Group: group, TaskID: id}
}

// Matches reports whether the selection refers to the given tree item.
func (s Selection) Matches(item TreeItem) bool {
	if s.Kind != item.Kind || s.Group != item.Group {
		return false
	}
	return s.Kind == ItemGroup || s.TaskID == item.TaskID
}

// selectionFor converts a tree item into the selection focusing it.
func selectionFor(item TreeItem) Selection {
	return Selection{Kind: item.Kind, Group: item.Group, TaskID: item.TaskID}
}

// PositionOf returns the selection's index in the projected item list.
func PositionOf(s Selection, items []TreeItem) (int, bool) {
	for i, item := range items {
		if s.Matches(item) {
			return i, true
		}
	}
	return 0, false
}

// Reconcile enforces the no-dangling-selection invariant: a selection that
// no longer resolves to a tree position is reset to the first item, or to
// the default group when the tree is empty. Idempotent.
func Reconcile(s Selection, items []TreeItem) Selection {
	if len(items) == 0 {
		return SelectGroup(protocol.DefaultGroup)
	}
	if _, ok := PositionOf(s, items); ok {
		return s
	}
	return selectionFor(items[0])
}
