package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextContributionStatus(t *testing.T) {
	tests := []struct {
		name    string
		current string
		total   int
		want    string
	}{
		{"first attestation confirms", ContributionPending, 1, ContributionConfirmed},
		{"second attestation reaches quorum", ContributionPending, 2, ContributionVerified},
		{"quorum from confirmed", ContributionConfirmed, 2, ContributionVerified},
		{"single attestation keeps confirmed", ContributionConfirmed, 1, ContributionConfirmed},
		{"verified never downgrades", ContributionVerified, 1, ContributionVerified},
		{"extra attestations past quorum", ContributionVerified, 5, ContributionVerified},
		{"quorum straight from pending", ContributionPending, 3, ContributionVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextContributionStatus(tt.current, tt.total))
		})
	}
}
