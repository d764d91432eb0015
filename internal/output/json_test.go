package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleVariables() map[string]string {
	return map[string]string{
		"current_version": "1.2.3",
		"new_version":     "1.3.0",
		"branch_name":     "main",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleVariables()))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleVariables(), decoded)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleVariables()))

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, sampleVariables(), decoded)
}

func TestWriteVariable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVariable(&buf, sampleVariables(), "new_version"))
	require.Equal(t, "1.3.0\n", buf.String())

	require.Error(t, WriteVariable(&buf, sampleVariables(), "nope"))
}

func TestWriteVariables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVariables(&buf, sampleVariables(), []string{"current_version"}))
	require.Equal(t, "1.2.3\n", buf.String(), "single name prints the bare value")

	buf.Reset()
	require.NoError(t, WriteVariables(&buf, sampleVariables(), []string{"current_version", "new_version"}))
	require.Equal(t, "current_version=1.2.3\nnew_version=1.3.0\n", buf.String())
}

func TestWriteAll_SortedByKey(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, sampleVariables()))
	require.Equal(t, "branch_name=main\ncurrent_version=1.2.3\nnew_version=1.3.0\n", buf.String())
}
