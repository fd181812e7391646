package fix

import (
	"bytes"
	"sort"
)

// Edit replaces source bytes [Start, End) with Text, Start == End denotes an insertion
type Edit struct {
	Start int    `yaml:"start" json:"start"`
	End   int    `yaml:"end" json:"end"`
	Text  string `yaml:"text" json:"text"`
}

// Insert creates an insertion at offset
func Insert(offset uint32, text string) Edit {
	return Edit{Start: int(offset), End: int(offset), Text: text}
}

func (e Edit) overlaps(prev Edit) bool {
	if e.Start < prev.End {
		return true
	}
	// two insertions at the same offset would depend on application order
	return e.Start == prev.Start && e.Start == prev.End
}

// Apply applies edits in offset order. Edits overlapping an already applied edit or
// falling outside of src are skipped and returned.
func Apply(src []byte, edits []Edit) ([]byte, []Edit) {
	if len(edits) == 0 {
		return src, nil
	}
	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start == ordered[j].Start {
			return ordered[i].End < ordered[j].End
		}
		return ordered[i].Start < ordered[j].Start
	})

	var skipped []Edit
	buf := bytes.Buffer{}
	buf.Grow(len(src))
	cursor := 0
	var prev *Edit
	for i := range ordered {
		edit := ordered[i]
		if edit.Start < 0 || edit.End < edit.Start || edit.End > len(src) || (prev != nil && edit.overlaps(*prev)) {
			skipped = append(skipped, edit)
			continue
		}
		buf.Write(src[cursor:edit.Start])
		buf.WriteString(edit.Text)
		cursor = edit.End
		prev = &ordered[i]
	}
	buf.Write(src[cursor:])
	return buf.Bytes(), skipped
}
