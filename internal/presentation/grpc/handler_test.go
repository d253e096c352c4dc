package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/model"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"not found", fmt.Errorf("%w: x", model.ErrScorecardNotFound), codes.NotFound},
		{"missing attribute", &model.AttributeError{Err: model.ErrMissingAttribute, Attribute: "age"}, codes.InvalidArgument},
		{"out of range", &model.AttributeError{Err: model.ErrValueOutOfRange, Attribute: "age"}, codes.InvalidArgument},
		{"empty batch", usecase.ErrEmptyBatch, codes.InvalidArgument},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{"misconfigured", model.ErrWeightTableMisconfiguration, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}
}
