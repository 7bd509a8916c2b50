package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/swaggo/swag"
)

var routerAnnotation = regexp.MustCompile(`@Router\s+(\S+)\s+\[(\w+)\]`)

func TestDocTemplateCoversAnnotatedHandlers(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not valid json: %v", err)
	}

	files, err := filepath.Glob(filepath.Join("..", "internal", "adapter", "http", "handlers", "*_handler.go"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no handler sources found: %v", err)
	}
	found := 0
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			found++
			path, method := m[1], strings.ToLower(m[2])
			if _, ok := parsed.Paths[path][method]; !ok {
				t.Errorf("%s: %s %s missing from the registered template", filepath.Base(f), method, path)
			}
		}
	}
	if found == 0 {
		t.Fatalf("no @Router annotations found")
	}
}
