package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslimbs/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		want    string
	}{
		{name: "none", sources: []bool{false, false}, want: "none set"},
		{name: "no sources at all", want: "none set"},
		{name: "two", sources: []bool{true, false, true}, want: "several set"},
		{name: "one", sources: []bool{false, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("input", "none set", "several set", tt.sources...)
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, oaserrors.ErrConfig)
			assert.Equal(t, "configuration error for input: "+tt.want, err.Error())
		})
	}
}
