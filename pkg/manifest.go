package pkgbump

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// ManifestFileName is the name of the manifest file pkgbump rewrites.
	ManifestFileName = "package.json"

	versionKey = "version"
	indent     = "  "
)

var (
	// ErrInvalidManifest is returned when the manifest is not a JSON object
	// or its version field is not a string.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrMissingVersion is returned when the manifest has no version field.
	ErrMissingVersion = errors.New("manifest has no version field")
)

type field struct {
	Key   string
	Value json.RawMessage
}

// Manifest is a JSON object whose top-level fields are kept in file order.
// Field values are held as raw JSON so anything pkgbump does not touch is
// written back exactly as it was read, apart from indentation.
type Manifest struct {
	fields []field
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a JSON object into a Manifest. A repeated key keeps
// its first position and its last value.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level value is not a JSON object", ErrInvalidManifest)
	}

	m := &Manifest{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrInvalidManifest, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidManifest, key, err)
		}
		m.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level object", ErrInvalidManifest)
	}
	return m, nil
}

// Keys returns the top-level keys in file order.
func (m *Manifest) Keys() []string {
	keys := make([]string, len(m.fields))
	for i, f := range m.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the raw JSON value stored under key.
func (m *Manifest) Get(key string) (json.RawMessage, bool) {
	for _, f := range m.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (m *Manifest) set(key string, raw json.RawMessage) {
	for i := range m.fields {
		if m.fields[i].Key == key {
			m.fields[i].Value = raw
			return
		}
	}
	m.fields = append(m.fields, field{Key: key, Value: raw})
}

// Version returns the manifest's version string.
func (m *Manifest) Version() (string, error) {
	raw, ok := m.Get(versionKey)
	if !ok {
		return "", ErrMissingVersion
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%w: version field is not a string", ErrInvalidManifest)
	}
	return v, nil
}

// SetVersion replaces the version field in place, or appends it when absent.
func (m *Manifest) SetVersion(v string) error {
	raw, err := marshalString(v)
	if err != nil {
		return err
	}
	m.set(versionKey, raw)
	return nil
}

// Encode renders the manifest with two-space indentation and a single
// trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if len(m.fields) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, f := range m.fields {
		key, err := marshalString(f.Key)
		if err != nil {
			return nil, err
		}
		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, f.Value, indent, indent); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
		if i < len(m.fields)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// WriteFile encodes the manifest and atomically replaces path with it. A
// symlinked path is followed and its target is replaced, so the link itself
// survives. The existing permission bits are kept and a new file gets 0644.
// Owner and group are not kept: the replaced file belongs to the invoking
// user.
func (m *Manifest) WriteFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}

	// A manifest that does not exist yet is written at path itself.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resolving manifest %s: %w", path, err)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat manifest %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	// No-op once the rename has happened.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting mode on temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing manifest %s: %w", path, err)
	}
	return nil
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
