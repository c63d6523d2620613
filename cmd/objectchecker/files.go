package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	oc "github.com/Gobd/objectchecker"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func loadSchema(path string, stdin io.Reader) (*oc.Schema, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	var s *oc.Schema
	if isYAML(path) {
		s, err = oc.ParseSchemaYAML(data)
	} else {
		s, err = oc.ParseSchema(data)
	}
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

func loadValue(path string, stdin io.Reader) (oc.Value, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return oc.Absent, err
	}
	var v oc.Value
	if isYAML(path) {
		v, err = oc.ParseYAML(data)
	} else {
		v, err = oc.ParseJSON(data)
	}
	if err != nil {
		return oc.Absent, fmt.Errorf("value %s: %w", path, err)
	}
	return v, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v json.Marshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
