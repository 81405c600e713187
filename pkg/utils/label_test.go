package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{name: "empty existing", existing: Label{}, incoming: Label{Value: "a", Source: "recall"}, want: Label{Value: "a", Source: "recall"}},
		{name: "empty incoming", existing: Label{Value: "a", Source: "recall"}, incoming: Label{}, want: Label{Value: "a", Source: "recall"}},
		{name: "accumulate", existing: Label{Value: "a", Source: "recall"}, incoming: Label{Value: "b", Source: "rank"}, want: Label{Value: "a|b", Source: "recall,rank"}},
		{name: "missing source", existing: Label{Value: "a"}, incoming: Label{Value: "b", Source: "rank"}, want: Label{Value: "a|b", Source: "rank"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeLabel(tt.existing, tt.incoming))
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		require.NoError(t, err)
		require.NotNil(t, logger)
		_ = logger.Sync()
	}
}
