package afterbuy

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Codec converts requests to XML and XML to responses. The zero value is
// ready to use and a Codec is safe for concurrent use.
type Codec struct {
	// Indent pretty-prints requests. Afterbuy accepts both forms.
	Indent bool
}

// Marshal serializes req with an XML declaration.
func (c Codec) Marshal(req Request) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if c.Indent {
		enc.Indent("", "  ")
	}
	if err := enc.Encode(req); err != nil {
		return nil, &MarshallingError{Op: "serialize", CallName: req.CallName(), Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &MarshallingError{Op: "serialize", CallName: req.CallName(), Err: err}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into resp. On error resp may be partially filled;
// use Decode to get all-or-nothing behaviour.
func (c Codec) Unmarshal(data []byte, resp Response) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(resp); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("response body holds no XML element")
		}
		return err
	}
	return nil
}

// Decode returns a new T decoded from data, or nil and a *MarshallingError.
// When callName is set, a response announcing another call is rejected.
func Decode[T any, PT interface {
	*T
	Response
}](c Codec, data []byte, callName string) (*T, error) {
	resp := PT(new(T))
	if err := c.Unmarshal(data, resp); err != nil {
		return nil, &MarshallingError{Op: "deserialize", CallName: callName, Err: err}
	}
	if got := resp.Header().CallName; callName != "" && got != "" && got != callName {
		return nil, &MarshallingError{
			Op:       "deserialize",
			CallName: callName,
			Err:      fmt.Errorf("unexpected call name %q in response", got),
		}
	}
	return (*T)(resp), nil
}

// charsetReader handles the legacy single-byte encodings some Afterbuy
// installations still declare.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
}
