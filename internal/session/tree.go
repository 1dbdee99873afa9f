package session

import (
	"sort"

	"github.com/s22625/lazyq/internal/protocol"
)

// ItemKind discriminates the two tree item variants. Every consumer must
// handle both cases.
type ItemKind int

const (
	ItemGroup ItemKind = iota
	ItemTask
)

// TreeItem is one row of the flattened, navigable tree view: either a group
// header or a task within a group. Items are ephemeral and recomputed from
// the snapshot on every call; there is no mutable tree kept in sync.
type TreeItem struct {
	Kind   ItemKind
	Group  string
	TaskID int
}

// GroupItem builds a group-header item.
func GroupItem(name string) TreeItem {
	return TreeItem{Kind: ItemGroup, Group: name}
}

// TaskItem builds a task-row item.
func TaskItem(group string, id int) TreeItem {
	return TreeItem{Kind: ItemTask, Group: group, TaskID: id}
}

// Tree projects the snapshot plus local collapse state into the ordered,
// flattened item list. Groups sort lexicographically with "default" always
// first; tasks sort ascending by id; collapsed groups contribute only their
// header. Pure function, safe to call on every render and refresh.
func Tree(state *protocol.State, collapsed map[string]bool) []TreeItem {
	if state == nil {
		return nil
	}

	var items []TreeItem
	for _, name := range GroupNames(state) {
		items = append(items, GroupItem(name))
		if collapsed[name] {
			continue
		}
		for _, id := range tasksInGroup(state, name) {
			items = append(items, TaskItem(name, id))
		}
	}
	return items
}

// GroupNames lists the snapshot's group names sorted alphabetically, with
// the default group moved to the front when present.
func GroupNames(state *protocol.State) []string {
	if state == nil {
		return nil
	}
	names := make([]string, 0, len(state.Groups))
	for name := range state.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		if name == protocol.DefaultGroup {
			copy(names[1:i+1], names[:i])
			names[0] = protocol.DefaultGroup
			break
		}
	}
	return names
}

// tasksInGroup lists the ids of a group's tasks in ascending order.
func tasksInGroup(state *protocol.State, group string) []int {
	var ids []int
	for id, task := range state.Tasks {
		if task.Group == group {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// allTaskIDs lists every task id in the snapshot in ascending order. This is
// the ordering switch operations work against.
func allTaskIDs(state *protocol.State) []int {
	if state == nil {
		return nil
	}
	ids := make([]int, 0, len(state.Tasks))
	for id := range state.Tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
