package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissingMembers(t *testing.T) {
	tests := []struct {
		name string
		want []string
		have []string
		miss []string
	}{
		{
			name: "everyone present",
			want: []string{"ada@example.com", "grace@example.com"},
			have: []string{"grace@example.com", "ada@example.com"},
			miss: nil,
		},
		{
			name: "casing differences do not count as missing",
			want: []string{"Ada@Example.com"},
			have: []string{"ada@example.com"},
			miss: nil,
		},
		{
			name: "missing entries keep their original casing, sorted",
			want: []string{"zoe@example.com", "Ada@example.com", "grace@example.com"},
			have: []string{"grace@example.com"},
			miss: []string{"Ada@example.com", "zoe@example.com"},
		},
		{
			name: "empty roster misses everyone",
			want: []string{"b@example.com", "a@example.com"},
			have: nil,
			miss: []string{"a@example.com", "b@example.com"},
		},
		{
			name: "nothing wanted",
			want: nil,
			have: []string{"a@example.com"},
			miss: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.miss, MissingMembers(tt.want, tt.have))
		})
	}
}
