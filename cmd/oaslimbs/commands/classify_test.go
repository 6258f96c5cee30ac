package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupClassifyFlags(t *testing.T) {
	fs, flags := SetupClassifyFlags()
	assert.False(t, flags.Strict)
	require.NoError(t, fs.Parse([]string{"--strict", "-q", "api.yaml", "pets"}))
	assert.True(t, flags.Strict)
	assert.True(t, flags.Quiet)
	assert.Equal(t, 2, fs.NArg())
}

func TestHandleClassify_MissingLimbs(t *testing.T) {
	err := HandleClassify([]string{writePetstore(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one limb")
}

func TestHandleClassify(t *testing.T) {
	input := writePetstore(t)

	output := captureStdout(t, func() {
		require.NoError(t, HandleClassify([]string{input, "get /health", "/pets", "store", "penguins"}))
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"get /health", "operation", "get", "/health"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"/pets", "path", "get", "/pets,", "post", "/pets"}, strings.Fields(lines[1]))
	assert.True(t, strings.HasPrefix(lines[2], "store"))
	assert.Contains(t, lines[2], "tag")
	assert.Contains(t, lines[2], "get /pets/{petId}, get /store/orders")
	assert.Equal(t, []string{"penguins", "unknown"}, strings.Fields(lines[3]))
}

func TestHandleClassify_Strict(t *testing.T) {
	input := writePetstore(t)

	var err error
	captureStdout(t, func() {
		err = HandleClassify([]string{"--strict", input, "pets", "penguins", "walruses"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 limb(s) match nothing: penguins, walruses")
}
