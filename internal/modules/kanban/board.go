package kanban

// ValidColumn reports whether c names a board column.
func ValidColumn(c string) bool {
	for _, col := range Columns {
		if col == c {
			return true
		}
	}
	return false
}

// clamp bounds index to [0, n].
func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// insertAt returns list with t inserted at index, clamped to the list bounds.
func insertAt(list []Task, t Task, index int) []Task {
	index = clamp(index, len(list))
	out := make([]Task, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, t)
	out = append(out, list[index:]...)
	return out
}

// without returns list minus the task with id, preserving order.
func without(list []Task, t Task) []Task {
	out := make([]Task, 0, len(list))
	for _, x := range list {
		if x.ID != t.ID {
			out = append(out, x)
		}
	}
	return out
}

// renumber assigns positions 0..n-1 and column col in list order and returns
// the tasks whose stored position or column changed.
func renumber(list []Task, col string) []Task {
	var changed []Task
	for i := range list {
		if list[i].Position != i || list[i].Column != col {
			list[i].Position = i
			list[i].Column = col
			changed = append(changed, list[i])
		}
	}
	return changed
}
