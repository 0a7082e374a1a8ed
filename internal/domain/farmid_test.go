package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeAndParseFarmID(t *testing.T) {
	tests := []struct {
		name   string
		seedID string
		index  uint32
		farmID string
	}{
		{name: "first farm", seedID: "token.seed.near", index: 0, farmID: "token.seed.near#0"},
		{name: "later farm", seedID: "gold", index: 17, farmID: "gold#17"},
		{name: "max index", seedID: "s", index: 4294967295, farmID: "s#4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			farmID := MakeFarmID(tt.seedID, tt.index)
			assert.Equal(t, tt.farmID, farmID)

			seedID, index, err := ParseFarmID(farmID)
			require.NoError(t, err)
			assert.Equal(t, tt.seedID, seedID)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestParseFarmIDRejectsMalformed(t *testing.T) {
	for _, farmID := range []string{"", "noseparator", "#0", "seed#", "seed#abc", "a#b#1", "seed#-1"} {
		_, _, err := ParseFarmID(farmID)
		assert.ErrorIs(t, err, ErrInvalidFarmID, "farm id %q", farmID)
	}
}
