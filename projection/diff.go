package projection

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DescriptionDiff renders the change between two task revisions so funders
// can see what the creator altered before deciding to keep their pledge in.
func DescriptionDiff(old, new Task) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(old.Description, new.Description, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}

// RevisionDiffs returns one rendered diff per replacement, oldest first.
func (v *TaskView) RevisionDiffs() (out []string) {
	all := append(append([]Task{}, v.Revisions...), v.Task)
	for i := 1; i < len(all); i++ {
		out = append(out, DescriptionDiff(all[i-1], all[i]))
	}
	return
}
