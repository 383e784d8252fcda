package assistant

import "github.com/huddlehq/huddle/internal/domain"

// IntentTag identifies which command a piece of free text was classified as.
type IntentTag string

const (
	TagCreate  IntentTag = "create"
	TagUpdate  IntentTag = "update"
	TagMove    IntentTag = "move"
	TagAssign  IntentTag = "assign"
	TagDelete  IntentTag = "delete"
	TagList    IntentTag = "list"
	TagHelp    IntentTag = "help"
	TagUnknown IntentTag = "unknown"
	TagError   IntentTag = "error"
)

// Intent is the structured result of parsing a command. Exactly one variant
// is produced per parse; each variant carries only the fields that apply to
// it. Optional fields are pointers so "not supplied" is distinguishable from
// an explicitly empty value.
type Intent interface {
	Tag() IntentTag
}

// TaskRef is a loose reference to a task: either a direct ID (a 32-character
// hex token found in the command) or a free-text title fragment.
type TaskRef struct {
	ID    string
	Title string
}

// IsZero reports whether the reference carries neither an ID nor a fragment.
func (r TaskRef) IsZero() bool {
	return r.ID == "" && r.Title == ""
}

type CreateIntent struct {
	Title        string
	Description  *string
	Status       *domain.TaskStatus
	AssigneeHint *string
}

func (CreateIntent) Tag() IntentTag { return TagCreate }

type UpdateIntent struct {
	Ref         TaskRef
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

func (UpdateIntent) Tag() IntentTag { return TagUpdate }

type MoveIntent struct {
	Ref          TaskRef
	TargetStatus *domain.TaskStatus
}

func (MoveIntent) Tag() IntentTag { return TagMove }

type AssignIntent struct {
	Ref          TaskRef
	AssigneeHint *string
}

func (AssignIntent) Tag() IntentTag { return TagAssign }

type DeleteIntent struct {
	Ref TaskRef
}

func (DeleteIntent) Tag() IntentTag { return TagDelete }

type ListIntent struct{}

func (ListIntent) Tag() IntentTag { return TagList }

type HelpIntent struct{}

func (HelpIntent) Tag() IntentTag { return TagHelp }

// UnknownIntent is the terminal "no rule matched" outcome. It is not an
// error: the executor returns its guidance as a normal response.
type UnknownIntent struct {
	Guidance string
}

func (UnknownIntent) Tag() IntentTag { return TagUnknown }

// ErrorIntent is produced when a command matched a rule but cannot be acted
// on at all, e.g. a create with no extractable title.
type ErrorIntent struct {
	Message string
}

func (ErrorIntent) Tag() IntentTag { return TagError }
