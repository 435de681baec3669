package domain

import "time"

// SubmissionStatus is the lifecycle state of a wiki submission.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "PENDING"
	SubmissionApproved SubmissionStatus = "APPROVED"
	SubmissionDenied   SubmissionStatus = "DENIED"
)

// validTransitions defines the allowed state machine transitions. Both
// terminal states are final: a submission never reopens.
var validTransitions = map[SubmissionStatus][]SubmissionStatus{
	SubmissionPending: {SubmissionApproved, SubmissionDenied},
}

// CanTransitionTo reports whether a transition from the current status to next
// is valid.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SubmissionType records whether the target slug existed when the submission
// was created.
type SubmissionType string

const (
	SubmissionNew  SubmissionType = "NEW"
	SubmissionEdit SubmissionType = "EDIT"
)

// WikiPage is a published wiki entry, keyed by slug. Writes with an existing
// slug fully replace the prior row.
type WikiPage struct {
	Slug      string    `json:"slug" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Category  string    `json:"category" bson:"category"` // hierarchical path, e.g. "Lore > Races"
	Content   string    `json:"content" bson:"content"`
	UpdatedBy string    `json:"updated_by" bson:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// WikiSubmission is a proposed wiki change awaiting reviewer decision. The
// slug may point at a page that does not exist yet (NEW). Once APPROVED or
// DENIED the row is immutable.
type WikiSubmission struct {
	ID           int64            `json:"id" bson:"_id"`
	Slug         string           `json:"slug" bson:"slug"`
	Title        string           `json:"title" bson:"title"`
	Category     string           `json:"category" bson:"category"`
	Content      string           `json:"content" bson:"content"`
	AuthorID     string           `json:"author_id" bson:"author_id"`
	AuthorName   string           `json:"author_name" bson:"author_name"`
	Type         SubmissionType   `json:"type" bson:"type"`
	Status       SubmissionStatus `json:"status" bson:"status"`
	DenialReason string           `json:"denial_reason,omitempty" bson:"denial_reason,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
}
