package pipeline

// Stage is a position in the fixed run order.
type Stage int

const (
	Inspect Stage = iota
	Outliers
	Coercion
	Imputation
	Prune
	Rename
	Reorder
	Export
	// Finished is the cursor after Export.
	Finished
)

var stageNames = [...]string{"inspect", "outliers", "coercion", "imputation", "prune", "rename", "reorder", "export", "finished"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "invalid"
	}
	return stageNames[s]
}

// Status is the outcome of a stage.
type Status int

const (
	Pending Status = iota
	Skipped
	Applied
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Applied:
		return "applied"
	}
	return "pending"
}
