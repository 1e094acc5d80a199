package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	vars := env(map[string]string{"RATE": "0.5", "X": "y", "LEVEL_2": "debug"})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "braced", in: "rate: ${RATE}", want: "rate: 0.5"},
		{name: "bare", in: "level: $LEVEL_2", want: "level: debug"},
		{name: "dollar escape", in: "$$${X}", want: "$y"},
		{name: "escaped reference", in: "pw: $${RATE}", want: "pw: ${RATE}"},
		{name: "positional left alone", in: "re: a$1b", want: "re: a$1b"},
		{name: "trailing dollar", in: "cost: 5$", want: "cost: 5$"},
		{name: "no references", in: "graphql: {}", want: "graphql: {}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := expandEnv([]byte(tc.in), vars)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(out))
		})
	}
}

func TestExpandEnv_MissingReportsAllSorted(t *testing.T) {
	_, err := expandEnv([]byte("a=${X} b=${MISSING_B} c=$MISSING_A d=${MISSING_B}"), env(map[string]string{"X": "ok"}))
	require.ErrorIs(t, err, ErrMissingEnv)
	require.ErrorContains(t, err, ": MISSING_A, MISSING_B")
}
