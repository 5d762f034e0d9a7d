// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/clustex/internal/digest"
)

// Format names an encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts "yaml", "yml" and "cbor", case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}

	return "", fmt.Errorf("ParseFormat(%q): %w", name, ErrUnknownFormat)
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("export: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBOR returns the deterministic CBOR encoding of s.
func (s *Snapshot) CBOR() ([]byte, error) {
	return encMode.Marshal(s)
}

// YAML returns the YAML encoding of s.
func (s *Snapshot) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Fingerprint returns the keyed BLAKE3 hash of the CBOR encoding of s.
func (s *Snapshot) Fingerprint() (digest.Hash, error) {
	data, err := s.CBOR()
	if err != nil {
		return digest.Hash{}, fmt.Errorf("Fingerprint: %w", err)
	}

	return digest.Snapshot(data), nil
}

// Encode writes s to w in format f.
func Encode(w io.Writer, s *Snapshot, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatYAML:
		data, err = s.YAML()
	case FormatCBOR:
		data, err = s.CBOR()
	default:
		return fmt.Errorf("Encode: %q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	_, err = w.Write(data)

	return err
}

// Decode reads one snapshot in format f from r.
func Decode(r io.Reader, f Format) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	var s Snapshot
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatCBOR:
		err = decMode.Unmarshal(data, &s)
	default:
		return nil, fmt.Errorf("Decode: %q: %w", f, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("Decode: version %d: %w", s.Version, ErrUnsupportedVersion)
	}

	return &s, nil
}
