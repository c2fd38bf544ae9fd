package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled schemas by Schema.Name. Names are unique per process.
var schemas = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

// finish turns a vendor reply into a Response. With a schema, a reply cut
// off by the token limit is reported as truncated rather than as invalid,
// and anything else must validate.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if req.Schema != nil {
		content = stripFence(content)
		if stop == StopMaxTokens {
			return nil, Truncated(content)
		}
		if err := checkReply(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// checkReply validates raw against s.
func checkReply(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return InvalidReply(raw, fmt.Errorf("not JSON: %w", err))
	}
	c, err := compileSchema(s)
	if err != nil {
		return InvalidReply(raw, err)
	}
	if err := c.Validate(v); err != nil {
		return InvalidReply(raw, err)
	}
	return nil
}

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	schemas.Lock()
	defer schemas.Unlock()
	if c, ok := schemas.byName[s.Name]; ok {
		return c, nil
	}

	// The compiler wants a decoded document, not Go maps with typed slices.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}

	url := "quizup://schemas/" + s.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	c, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", s.Name, err)
	}
	schemas.byName[s.Name] = c
	return c, nil
}

// stripFence removes a markdown code fence some models wrap JSON in.
func stripFence(raw json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return raw
	}
	b = b[3:]
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	} else {
		return raw
	}
	b = bytes.TrimSpace(b)
	b = bytes.TrimSuffix(b, []byte("```"))
	return json.RawMessage(bytes.TrimSpace(b))
}
