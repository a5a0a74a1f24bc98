package collage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFitModeRoundTrip(t *testing.T) {
	for _, s := range []string{"fill", "fit", "stretch", "center", "span"} {
		mode, err := ParseFitMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, mode.String())
	}
}

func TestParseFitModeRejectsUnknown(t *testing.T) {
	_, err := ParseFitMode("tile")
	assert.Error(t, err)

	_, err = ParseFitMode("")
	assert.Error(t, err)

	_, err = ParseFitMode("Fill")
	assert.Error(t, err)
}

func TestParseSelectionPolicyRoundTrip(t *testing.T) {
	for _, s := range []string{"random", "sequential"} {
		policy, err := ParseSelectionPolicy(s)
		require.NoError(t, err)
		assert.Equal(t, s, policy.String())
	}
}

func TestParseSelectionPolicyRejectsUnknown(t *testing.T) {
	_, err := ParseSelectionPolicy("shuffle")
	assert.Error(t, err)
}
