package structs

// Kind is the type of document a Change refers to.
type Kind string

const (
	// KindJob is a job document (the "jobs" collection)
	KindJob Kind = "Job"

	// KindHealth is a health document (the "health" collection)
	KindHealth Kind = "Health"
)

// Op is the kind of write that produced a Change.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ToOp normalises the operation names our stores report (eg. INSERT, replace) to an Op.
func ToOp(s string) Op {
	switch s {
	case "insert", "INSERT":
		return OpInsert
	case "update", "UPDATE", "replace":
		return OpUpdate
	case "delete", "DELETE":
		return OpDelete
	default:
		return ""
	}
}
