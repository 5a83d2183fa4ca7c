package varconf

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const encodeInput = `name = service
port = 8080
enabled = true
version = "42"
tags = '(web api)
empty = '()
server = table([zeta = 1, alpha = table([]), list = '(table([k = v]))])`

func TestEncodeJSON(t *testing.T) {
	doc := mustParse(t, encodeInput)

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, doc); err != nil {
		t.Fatalf("EncodeJSON() failed: %v", err)
	}

	expected := `{
  "name": "service",
  "port": 8080,
  "enabled": true,
  "version": "42",
  "tags": [
    "web",
    "api"
  ],
  "empty": [],
  "server": {
    "zeta": 1,
    "alpha": {},
    "list": [
      {
        "k": "v"
      }
    ]
  }
}
`
	if buf.String() != expected {
		t.Errorf("EncodeJSON() mismatch:\nexpected:\n%s\ngot:\n%s", expected, buf.String())
	}
}

func TestEncodeYAML_KeyOrder(t *testing.T) {
	doc := mustParse(t, encodeInput)

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, doc); err != nil {
		t.Fatalf("EncodeYAML() failed: %v", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatalf("Output is not valid YAML: %v\n%s", err, buf.String())
	}
	root := node.Content[0]

	var keys []string
	for i := 0; i < len(root.Content); i += 2 {
		keys = append(keys, root.Content[i].Value)
	}
	expected := doc.Keys()
	if strings.Join(keys, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected keys %v, got %v", expected, keys)
	}

	server := root.Content[len(root.Content)-1]
	if server.Kind != yaml.MappingNode || server.Content[0].Value != "zeta" || server.Content[2].Value != "alpha" {
		t.Errorf("Expected nested table order zeta, alpha; got:\n%s", buf.String())
	}
}

func TestEncodeYAML_Types(t *testing.T) {
	doc := mustParse(t, encodeInput)

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, doc); err != nil {
		t.Fatalf("EncodeYAML() failed: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v", err)
	}

	if decoded["port"] != 8080 {
		t.Errorf("Expected port to be the integer 8080, got %#v", decoded["port"])
	}
	if decoded["enabled"] != true {
		t.Errorf("Expected enabled to be true, got %#v", decoded["enabled"])
	}
	if decoded["version"] != "42" {
		t.Errorf("Expected version to stay a string, got %#v", decoded["version"])
	}
	if empty, ok := decoded["empty"].([]any); !ok || len(empty) != 0 {
		t.Errorf("Expected empty sequence, got %#v", decoded["empty"])
	}
}

func TestEncodeYAML_Marshal(t *testing.T) {
	out, err := yaml.Marshal(tableOf("b", Array{String("x")}, "a", Integer(1)))
	if err != nil {
		t.Fatalf("yaml.Marshal() failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "b:\n") || !strings.Contains(string(out), "\na: 1\n") {
		t.Errorf("Expected b before a, got %q", string(out))
	}
}

func TestEncodeJSON_NoHTMLEscaping(t *testing.T) {
	doc := mustParse(t, `cmd = "a < b && c > d"
list = '("<tag>")`)

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, doc); err != nil {
		t.Fatalf("EncodeJSON() failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"a < b && c > d"`) || !strings.Contains(buf.String(), `"<tag>"`) {
		t.Errorf("Expected unescaped text, got:\n%s", buf.String())
	}
}
