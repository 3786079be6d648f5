package alwaseet

import (
	"bytes"
	"encoding/json"
	"strconv"
)

//
// ────────────────────────────────────────────────
//   Upstream endpoints
// ────────────────────────────────────────────────
//

const (
	loginPath        = "/login"
	citiesPath       = "/citys" // sic, upstream spelling
	regionsPath      = "/regions"
	packageSizesPath = "/package-sizes"
)

// Resource names a read-only lookup exposed by the merchant API.
type Resource struct {
	Name string // human name used in error details ("cities", "package sizes")
	Path string
}

var (
	Cities       = Resource{Name: "cities", Path: citiesPath}
	Regions      = Resource{Name: "regions", Path: regionsPath}
	PackageSizes = Resource{Name: "package sizes", Path: packageSizesPath}
)

//
// ────────────────────────────────────────────────
//   Envelope
// ────────────────────────────────────────────────
//

// Envelope is the uniform response shape of every merchant API call.
// Data is kept raw so lookups can pass it through untouched.
type Envelope struct {
	Status Flag            `json:"status"`
	Data   json.RawMessage `json:"data"`
	Msg    Message         `json:"msg"`
}

// LoginData is the payload of a successful POST /login.
type LoginData struct {
	Token string `json:"token"`
}

// Flag decodes the envelope status by truthiness: true, any non-zero
// number and any non-empty string count as success.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = false
	case bytes.Equal(b, []byte("true")):
		*f = true
	case bytes.Equal(b, []byte("false")):
		*f = false
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = s != ""
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			// arrays and objects: truthy when non-empty
			*f = len(b) > 2
			return nil
		}
		*f = n != 0
	}
	return nil
}

// Message decodes the envelope msg. Strings are taken as-is; any other
// JSON value is kept as its literal text so nothing the upstream says is lost.
type Message string

func (m *Message) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Message(s)
		return nil
	}
	*m = Message(b)
	return nil
}

// token extracts data.token, returning "" when data is absent or not an object.
func (e Envelope) token() string {
	if len(e.Data) == 0 {
		return ""
	}
	var d LoginData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return ""
	}
	return d.Token
}

// payload returns data, substituting an empty list when the upstream omitted it.
func (e Envelope) payload() json.RawMessage {
	if len(bytes.TrimSpace(e.Data)) == 0 {
		return json.RawMessage("[]")
	}
	return e.Data
}
