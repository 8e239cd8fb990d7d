package polyeq_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	polyeq "github.com/polyeq/polyeq"
)

func call(tool string, params map[string]interface{}) polyeq.ToolResponse {
	return polyeq.HandleToolCall(polyeq.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_Tokenize(t *testing.T) {
	resp := call("tokenize", map[string]interface{}{"expr": "2x"})
	require.Empty(t, resp.Error)
	tokens, ok := resp.Result.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, tokens, 4) // NUMBER, IMPLICIT_MULTIPLY, VARIABLE, EOF
	assert.Equal(t, "IMPLICIT_MULTIPLY", tokens[1]["kind"])
}

func TestHandleToolCall_Parse(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "x+1"})
	require.Empty(t, resp.Error)
	tree, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "binary", tree["type"])
	assert.Contains(t, resp.String, "BinaryOp: +")
}

func TestHandleToolCall_ParseError(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": "x+"})
	assert.Contains(t, resp.Error, "unexpected end of input")
}

func TestHandleToolCall_Normalize(t *testing.T) {
	resp := call("normalize", map[string]interface{}{"expr": "(x+1)^2"})
	require.Empty(t, resp.Error)
	assert.Equal(t, "x^2 + 2*x + 1", resp.String)
}

func TestHandleToolCall_NormalizeDivisionByZero(t *testing.T) {
	resp := call("normalize", map[string]interface{}{"expr": "x/0"})
	assert.Contains(t, resp.Error, "division by zero")
}

func TestHandleToolCall_Equivalent(t *testing.T) {
	resp := call("equivalent", map[string]interface{}{"a": "x+y", "b": "y+x"})
	require.Empty(t, resp.Error)
	assert.Equal(t, true, resp.Result)
	assert.Equal(t, "equivalent", resp.String)

	resp = call("equivalent", map[string]interface{}{"a": "x", "b": "y"})
	require.Empty(t, resp.Error)
	assert.Equal(t, false, resp.Result)
	assert.Equal(t, "not equivalent", resp.String)
}

func TestHandleToolCall_EquivalentSideTagged(t *testing.T) {
	resp := call("equivalent", map[string]interface{}{"a": "x", "b": "y+"})
	assert.Contains(t, resp.Error, "b: ")
}

func TestHandleToolCall_MissingParam(t *testing.T) {
	resp := call("normalize", map[string]interface{}{})
	assert.Contains(t, resp.Error, "missing param: expr")
}

func TestHandleToolCall_WrongParamType(t *testing.T) {
	resp := call("parse", map[string]interface{}{"expr": 7.0})
	assert.Contains(t, resp.Error, "must be a string")
}

func TestHandleToolCall_UnknownTool(t *testing.T) {
	resp := call("differentiate", nil)
	assert.Contains(t, resp.Error, "unknown tool")
}

func TestToolSpec_ValidJSON(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name        string                 `json:"name"`
			Description string                 `json:"description"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(polyeq.ToolSpec()), &spec))
	require.Len(t, spec.Tools, 5)
	names := make([]string, len(spec.Tools))
	for i, tool := range spec.Tools {
		names[i] = tool.Name
	}
	assert.Contains(t, names, "equivalent")
	assert.Contains(t, names, "tool_spec")
}
