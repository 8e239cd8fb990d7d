package polyeq

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches one tool request. Parse and normalization
// failures come back as the Error field, never as a Go error, so the
// transport layer stays oblivious to expression semantics.
func HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}

	switch req.Tool {
	case "tokenize":
		src, err := getString("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		tokens, err := Tokenize(src)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out := make([]map[string]interface{}, len(tokens))
		for i, t := range tokens {
			out[i] = map[string]interface{}{"kind": t.Kind.String(), "text": t.Text, "pos": t.Pos}
		}
		return ToolResponse{Result: out}

	case "parse":
		src, err := getString("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		tree, err := Parse(src)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: nodeJSON(tree), String: PrintAST(tree)}

	case "normalize":
		src, err := getString("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		tree, err := Parse(src)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		poly, err := NormalizeExpression(tree)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: map[string]interface{}{
				"polynomial": poly.String(),
				"terms":      poly.Len(),
				"expandable": IsExpandable(tree),
			},
			String: poly.String(),
		}

	case "equivalent":
		a, err := getString("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getString("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ta, err := Parse(a)
		if err != nil {
			return ToolResponse{Error: fmt.Sprintf("a: %s", err)}
		}
		tb, err := Parse(b)
		if err != nil {
			return ToolResponse{Error: fmt.Sprintf("b: %s", err)}
		}
		equivalent, err := AreEquivalent(ta, tb)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		verdict := "not equivalent"
		if equivalent {
			verdict = "equivalent"
		}
		return ToolResponse{Result: equivalent, String: verdict}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("tokenize", "Tokenize an expression string, implicit multiplication included", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("parse", "Parse an expression into its AST", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("normalize", "Expand an expression into canonical polynomial form", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("equivalent", "Decide whether two expressions are mathematically equivalent", []string{"a", "b"}, map[string]string{"a": "string", "b": "string"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
