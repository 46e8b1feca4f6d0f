package report

// Rendered is the submission-level view of a report tree: the three finding
// lists flattened in depth-first traversal order. It is the sole artifact the
// output layer consumes.
type Rendered struct {
	Fatal       []Finding
	Warnings    []Finding
	Information []Finding
}

// Assemble flattens a report tree bottom-up into a Rendered result. Each
// node's own findings come before those of its children, and children keep
// the order the matcher visited them in, so output is deterministic for a
// given spec and filesystem state.
func Assemble(root *Report) *Rendered {
	rendered := &Rendered{}
	rendered.fold(root)
	return rendered
}

func (rr *Rendered) fold(r *Report) {
	rr.Fatal = append(rr.Fatal, r.Fatal...)
	rr.Warnings = append(rr.Warnings, r.Warnings...)
	rr.Information = append(rr.Information, r.Information...)
	for _, child := range r.Children {
		rr.fold(child)
	}
}

// IsClean reports whether the submission passed: no fatal findings and no
// warnings. Information findings alone do not fail a submission.
func (rr *Rendered) IsClean() bool {
	return len(rr.Fatal) == 0 && len(rr.Warnings) == 0
}

// Counts returns the number of fatal, warning and information findings.
func (rr *Rendered) Counts() (fatal, warnings, information int) {
	return len(rr.Fatal), len(rr.Warnings), len(rr.Information)
}
