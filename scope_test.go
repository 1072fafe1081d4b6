package sparsipy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScopes(t *testing.T) {
	testData := map[string]struct {
		nSteps    int
		scopes    [][]int
		nFeatures int
		wantErr   bool
	}{
		"valid partition": {
			nSteps:    3,
			scopes:    [][]int{{0, 1, 8}, {2, 3}, {4, 5, 6, 7}},
			nFeatures: 9,
		},
		"single scope": {
			nSteps:    1,
			scopes:    [][]int{{2, 0, 1}},
			nFeatures: 3,
		},
		"not enough scopes": {
			nSteps:  3,
			scopes:  [][]int{{0, 1, 8}, {2, 3}},
			wantErr: true,
		},
		"too many scopes": {
			nSteps:  1,
			scopes:  [][]int{{0}, {1}},
			wantErr: true,
		},
		"overlap across scopes": {
			nSteps:  3,
			scopes:  [][]int{{0, 1, 8}, {2, 3}, {4, 5, 6, 7, 8}},
			wantErr: true,
		},
		"duplicate within a scope": {
			nSteps:  2,
			scopes:  [][]int{{0, 1, 1}, {2}},
			wantErr: true,
		},
		"missing index": {
			nSteps:  3,
			scopes:  [][]int{{0, 1, 8}, {2, 3}, {4, 6, 7}},
			wantErr: true,
		},
		"negative index": {
			nSteps:  2,
			scopes:  [][]int{{0, -1}, {1}},
			wantErr: true,
		},
		"empty scope": {
			nSteps:  2,
			scopes:  [][]int{{0, 1}, {}},
			wantErr: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			nFeatures, featureIndices, err := validateScopes(td.nSteps, td.scopes)
			if td.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.nFeatures, nFeatures)
			assert.Equal(t, td.scopes, featureIndices)
		})
	}
}

func TestValidateScopesCopiesInput(t *testing.T) {
	scopes := [][]int{{0, 1}, {2}}
	_, featureIndices, err := validateScopes(2, scopes)
	require.NoError(t, err)

	scopes[0][0] = 99
	assert.Equal(t, 0, featureIndices[0][0])
}
