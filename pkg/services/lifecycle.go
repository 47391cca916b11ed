package services

import (
	"github.com/docforge/docforge-engine/pkg/apperrors"
	"github.com/docforge/docforge-engine/pkg/models"
)

// allowedTransitions is the document status machine. Anything not listed is
// rejected, including self-transitions.
var allowedTransitions = map[string][]string{
	models.DocumentStatusDraft:    {models.DocumentStatusInReview},
	models.DocumentStatusInReview: {models.DocumentStatusDone, models.DocumentStatusDraft},
	models.DocumentStatusDone:     {models.DocumentStatusPublish},
	models.DocumentStatusPublish:  {models.DocumentStatusDraft},
}

// CanTransition reports whether a document may move from one status to
// another.
func CanTransition(current, requested string) bool {
	for _, next := range allowedTransitions[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// CheckTransition validates a status change against the lifecycle machine.
// Returns apperrors.StatusTransitionError when the move is not allowed and a
// plain validation error when the requested status is unknown.
func CheckTransition(current, requested string) error {
	if !models.ValidDocumentStatus(requested) {
		return apperrors.Validation("unknown document status: %s", requested)
	}
	if !CanTransition(current, requested) {
		return &apperrors.StatusTransitionError{
			Current:   current,
			Requested: requested,
		}
	}
	return nil
}
