package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"exercise-tracker/internal/domain"
)

func TestBuildFindQuery(t *testing.T) {
	from := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.ExerciseFilter
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter",
			filter:    domain.ExerciseFilter{},
			wantQuery: `SELECT id, username, description, duration, date FROM exercises ORDER BY seq`,
		},
		{
			name:      "username only",
			filter:    domain.ExerciseFilter{Username: "alice"},
			wantQuery: `SELECT id, username, description, duration, date FROM exercises WHERE username = $1 ORDER BY seq`,
			wantArgs:  []interface{}{"alice"},
		},
		{
			name:      "full range with limit",
			filter:    domain.ExerciseFilter{Username: "alice", From: &from, To: &to, Limit: 2},
			wantQuery: `SELECT id, username, description, duration, date FROM exercises WHERE username = $1 AND date >= $2 AND date <= $3 ORDER BY seq LIMIT $4`,
			wantArgs:  []interface{}{"alice", from, to, 2},
		},
		{
			name:      "upper bound only",
			filter:    domain.ExerciseFilter{Username: "alice", To: &to},
			wantQuery: `SELECT id, username, description, duration, date FROM exercises WHERE username = $1 AND date <= $2 ORDER BY seq`,
			wantArgs:  []interface{}{"alice", to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFindQuery(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
