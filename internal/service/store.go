package service

import (
	"context"

	"github.com/embermatch/api/internal/model"
)

// ResponseStore defines the interface for durable response storage.
// Implementations must honor last-writer-wins semantics per
// (user, question): CurrentResponses returns exactly one value per
// answered question, the most recently submitted one.
type ResponseStore interface {
	CurrentResponses(ctx context.Context, userID string) (model.ResponseSnapshot, error)
	UpsertResponse(ctx context.Context, resp *model.Response) error
}
