package projection

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utiljson "k8s.io/apimachinery/pkg/util/json"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/yaml"
)

// ToYAML dumps the whole object, status included, as YAML.
func ToYAML(obj *unstructured.Unstructured) (string, error) {
	if obj == nil || obj.Object == nil {
		return "", &InputError{Reason: "object is nil"}
	}
	out, err := yaml.Marshal(obj.Object)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	return string(out), nil
}

// ParseApplyYAML parses a manifest submitted for apply. The text must hold
// exactly one document; metadata.name and metadata.namespace must both be
// non-empty strings. Integers decode as int64.
func ParseApplyYAML(text string) (*ApplyRequest, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Reason: "empty document"}
	}

	doc, err := singleDocumentJSON(text)
	if err != nil {
		return nil, err
	}

	var content map[string]interface{}
	if err := utiljson.Unmarshal(doc, &content); err != nil {
		return nil, &InputError{Reason: "manifest is not an object", Err: err}
	}
	if content == nil {
		return nil, &InputError{Reason: "empty document"}
	}

	obj := &unstructured.Unstructured{Object: content}
	if err := checkObject(obj); err != nil {
		// A manifest without metadata lacks the required name.
		if _, ok := content["metadata"]; !ok {
			return nil, &FieldError{Field: "metadata.name"}
		}
		return nil, err
	}

	name := stringAt(content, "metadata", "name")
	if name == "" {
		return nil, &FieldError{Field: "metadata.name"}
	}
	namespace := stringAt(content, "metadata", "namespace")
	if namespace == "" {
		return nil, &FieldError{Field: "metadata.namespace"}
	}

	return &ApplyRequest{
		Name:      name,
		Namespace: namespace,
		Object:    obj,
	}, nil
}

// singleDocumentJSON converts the only non-empty document in text to JSON.
// Comment-only documents and bare separators are skipped.
func singleDocumentJSON(text string) ([]byte, error) {
	reader := utilyaml.NewYAMLReader(bufio.NewReader(strings.NewReader(text)))

	var doc []byte
	for {
		chunk, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &InputError{Reason: "invalid YAML", Err: err}
		}

		j, err := yaml.YAMLToJSON(chunk)
		if err != nil {
			return nil, &InputError{Reason: "invalid YAML", Err: err}
		}
		if bytes.Equal(bytes.TrimSpace(j), []byte("null")) {
			continue
		}
		if doc != nil {
			return nil, &InputError{Reason: "multiple documents"}
		}
		doc = j
	}

	if doc == nil {
		return nil, &InputError{Reason: "empty document"}
	}
	return doc, nil
}
