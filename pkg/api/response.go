package api

import (
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// Response is the parsed result of a single API call. Beyond the result
// code and message the payload has no fixed schema; ResData is passed
// through untouched and callers interpret it per method.
type Response struct {
	Code    int            `json:"code"`
	Message string         `json:"msg"`
	ResData map[string]any `json:"resData,omitempty"`

	// Raw is the verbatim response body the fields above were parsed from.
	Raw []byte `json:"-"`
}

// OK reports whether the remote command completed successfully.
func (r *Response) OK() bool {
	return r.Code == StatusOK
}

// Get extracts a value from the raw response body by gjson path,
// e.g. "resData.tfa" or "resData.domain.0.avail".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// DecodeData decodes ResData into the given struct. Decoding is weakly
// typed so numeric fields survive the float64 round trip JSON forces on
// untyped payloads. Field names follow json struct tags.
func (r *Response) DecodeData(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.ResData)
}
