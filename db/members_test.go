package db

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
)

func TestMemberConstraintErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate user maps to duplicate member",
			err:  &pq.Error{Code: "23505", Constraint: memberUserConstraint},
			want: apperrors.ErrDuplicateMember,
		},
		{
			name: "duplicate position maps to position conflict",
			err:  &pq.Error{Code: "23505", Constraint: memberPositionConstraint},
			want: apperrors.ErrDuplicatePosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, memberConstraintErr(tt.err, "error inserting member"))
		})
	}
}

func TestMemberConstraintErrWrapsOtherErrors(t *testing.T) {
	fkErr := &pq.Error{Code: "23503"}
	got := memberConstraintErr(fkErr, "error inserting member")

	assert.NotEqual(t, apperrors.ErrDuplicateMember, got)
	assert.NotEqual(t, apperrors.ErrDuplicatePosition, got)

	var pqErr *pq.Error
	assert.True(t, errors.As(got, &pqErr))
	assert.Contains(t, got.Error(), "error inserting member")
}
