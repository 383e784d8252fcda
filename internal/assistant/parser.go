package assistant

import (
	"regexp"
	"strings"

	"github.com/huddlehq/huddle/internal/domain"
)

// HelpText is the static guidance returned for help commands.
const HelpText = `I can manage tasks for you. Try:
  - create a task to review the designs
  - update task 'review designs' status to in-progress
  - move task 'review designs' to done
  - assign task 'review designs' to Sarah
  - delete task 'review designs'
  - list tasks
You can reference a task by a quoted title fragment or by its ID.`

// UnknownText is the canned guidance for commands that match no rule.
const UnknownText = `Sorry, I didn't understand that. Type "help" to see the commands I know.`

// parseRule associates an intent tag with a matcher and an extractor.
// Rules are evaluated strictly in order; the first matching rule wins.
// The order is load-bearing: "update task status to done" satisfies both
// the Update and Move matchers, and must classify as Update.
type parseRule struct {
	tag     IntentTag
	match   func(string) bool
	extract func(string) Intent
}

var parseRules = []parseRule{
	{TagCreate, matchKeywords(`\b(?:create|add|new|make)\b`, `\btask\b`), extractCreate},
	{TagUpdate, matchKeywords(`\b(?:update|change|edit|modify)\b`, `\btask\b`), extractUpdate},
	{TagMove, matchKeywords(`\b(?:move|mark|set)\b`, `\b(?:task|status)\b`), extractMove},
	{TagAssign, matchKeywords(`\b(?:assign|give|delegate)\b`, `\btask\b`), extractAssign},
	{TagDelete, matchKeywords(`\b(?:delete|remove|drop)\b`, `\btask\b`), extractDelete},
	{TagList, matchKeywords(`\b(?:list|show|display|view|what)\b`, `\btasks?\b`), func(string) Intent { return ListIntent{} }},
	{TagHelp, matchKeywords(`\bhelp\b`, ``), func(string) Intent { return HelpIntent{} }},
}

// Parse classifies a raw command string into an Intent. It is a pure
// function of the text: lower-case and trim, then evaluate the ordered rule
// list. Text matching no rule yields UnknownIntent with guidance.
func Parse(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range parseRules {
		if rule.match(t) {
			return rule.extract(t)
		}
	}
	return UnknownIntent{Guidance: UnknownText}
}

// matchKeywords builds a matcher requiring one hit from the action pattern
// and, when non-empty, one hit from the object pattern.
func matchKeywords(actionPattern, objectPattern string) func(string) bool {
	action := regexp.MustCompile(actionPattern)
	var object *regexp.Regexp
	if objectPattern != "" {
		object = regexp.MustCompile(objectPattern)
	}
	return func(t string) bool {
		if !action.MatchString(t) {
			return false
		}
		return object == nil || object.MatchString(t)
	}
}

var (
	reTaskID      = regexp.MustCompile(`\b[0-9a-f]{32}\b`)
	reQuoted      = regexp.MustCompile(`['"]([^'"]+)['"]`)
	reDescClause  = regexp.MustCompile(`\b(?:description|desc):\s*(.+)$`)
	reTitleLabel  = regexp.MustCompile(`\btitle:\s*(.+)$`)
	reOtherLabels = regexp.MustCompile(`\s*\b(?:title|description|desc|status):.*$`)
	reCreateTitle = regexp.MustCompile(`\btask\b(?:\s+(?:to|for|called|named)\s+|\s*:\s*)(.+)$`)
	reAssignedTo  = regexp.MustCompile(`\bassign(?:ed)?\s+to\s+([a-z0-9 ._@'-]+?)\s*[.!?]*$`)
	reLastTo      = regexp.MustCompile(`^.*\bto\s+([a-z0-9 ._@'-]+?)\s*[.!?]*$`)

	reInProgress = regexp.MustCompile(`\bin[ -]progress\b`)
	reDone       = regexp.MustCompile(`\b(?:done|completed?)\b`)
	reTodo       = regexp.MustCompile(`\bto[ -]?do\b`)
)

func extractCreate(t string) Intent {
	in := CreateIntent{}

	if m := reDescClause.FindStringSubmatch(t); m != nil {
		desc := trimFragment(m[1])
		in.Description = &desc
		t = reDescClause.ReplaceAllString(t, "")
	}
	if m := reAssignedTo.FindStringSubmatch(t); m != nil {
		hint := trimFragment(m[1])
		in.AssigneeHint = &hint
		t = reAssignedTo.ReplaceAllString(t, "")
	}
	in.Status = extractStatus(t)

	title := extractQuoted(t)
	if title == "" {
		if m := reCreateTitle.FindStringSubmatch(t); m != nil {
			title = trimFragment(reOtherLabels.ReplaceAllString(m[1], ""))
		}
	}
	if title == "" {
		return ErrorIntent{Message: "I need a title to create a task, e.g. create a task to review the designs."}
	}
	in.Title = title
	return in
}

func extractUpdate(t string) Intent {
	in := UpdateIntent{Ref: extractRef(t)}
	if v := labelValue(t, reTitleLabel); v != nil {
		in.Title = v
	}
	if v := labelValue(t, reDescClause); v != nil {
		in.Description = v
	}
	in.Status = extractStatus(t)
	return in
}

func extractMove(t string) Intent {
	return MoveIntent{
		Ref:          extractRef(t),
		TargetStatus: extractStatus(t),
	}
}

func extractAssign(t string) Intent {
	in := AssignIntent{Ref: extractRef(t)}
	// The assignee is whatever follows the final "to". Quoted fragments
	// are consumed by the task reference, so strip them first.
	stripped := reQuoted.ReplaceAllString(t, "")
	if m := reLastTo.FindStringSubmatch(stripped); m != nil {
		hint := trimFragment(m[1])
		if hint != "" {
			in.AssigneeHint = &hint
		}
	}
	return in
}

func extractDelete(t string) Intent {
	return DeleteIntent{Ref: extractRef(t)}
}

// extractRef pulls a task reference out of the text: a 32-hex ID token if
// present, otherwise a quoted title fragment.
func extractRef(t string) TaskRef {
	if id := reTaskID.FindString(t); id != "" {
		return TaskRef{ID: id}
	}
	return TaskRef{Title: extractQuoted(t)}
}

func extractQuoted(t string) string {
	if m := reQuoted.FindStringSubmatch(t); m != nil {
		return trimFragment(m[1])
	}
	return ""
}

// extractStatus scans for a status from the closed vocabulary, mapping the
// free-text synonyms "in progress" -> in-progress and "completed" -> done.
// in-progress is checked first so its "progress" never misreads as todo/done.
func extractStatus(t string) *domain.TaskStatus {
	var s domain.TaskStatus
	switch {
	case reInProgress.MatchString(t):
		s = domain.TaskInProgress
	case reDone.MatchString(t):
		s = domain.TaskDone
	case reTodo.MatchString(t):
		s = domain.TaskTodo
	default:
		return nil
	}
	return &s
}

// labelValue extracts the value after a "label:" marker, cutting off any
// trailing label of another kind.
func labelValue(t string, re *regexp.Regexp) *string {
	m := re.FindStringSubmatch(t)
	if m == nil {
		return nil
	}
	v := trimFragment(reOtherLabels.ReplaceAllString(m[1], ""))
	if v == "" {
		return nil
	}
	return &v
}

func trimFragment(s string) string {
	return strings.TrimSpace(strings.Trim(s, `.,!?;:"' `))
}
