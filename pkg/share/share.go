// Package share turns a field list into a token that fits in a URL query
// string and back. A token is the compact JSON array of field records,
// encoded with standard base64 and then percent-escaped.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DefaultParam is the query parameter carrying the token.
const DefaultParam = "form"

// ErrDecode marks every failure to turn a token back into a list.
var ErrDecode = errors.New("share: invalid form token")

// ErrNoToken is returned when a URL carries no token.
var ErrNoToken = errors.New("share: no form token in link")

// Encode serialises list into a URL-safe token.
func Encode(list *model.List) (string, error) {
	if list == nil {
		list = model.NewList()
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("share: encode: %w", err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(payload)), nil
}

// Decode reverses Encode. Ids embedded in the token are preserved; callers
// that load a shared form should still route the result through a replace
// that assigns fresh ids.
func Decode(token string) (*model.List, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrDecode)
	}
	unescaped, err := url.PathUnescape(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	payload, err := base64.StdEncoding.DecodeString(unescaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: payload is not JSON", ErrDecode)
	}
	var list model.List
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &list, nil
}

// Option configures link building and parsing.
type Option func(*options)

type options struct {
	param string
}

// WithParam overrides the query parameter name.
func WithParam(name string) Option {
	return func(o *options) {
		if strings.TrimSpace(name) != "" {
			o.param = name
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{param: DefaultParam}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// BuildURL returns base with the token of list set as the form parameter.
// Existing query parameters are kept.
func BuildURL(base string, list *model.List, opts ...Option) (string, error) {
	o := applyOptions(opts)
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: base url: %w", err)
	}
	token, err := Encode(list)
	if err != nil {
		return "", err
	}
	query := u.Query()
	query.Del(o.param)
	raw := query.Encode()
	if raw != "" {
		raw += "&"
	}
	// token is already escaped; appending it directly avoids escaping twice.
	u.RawQuery = raw + url.QueryEscape(o.param) + "=" + token
	return u.String(), nil
}

// TokenFromURL extracts the raw, still escaped token from a link. Input that
// does not parse as a URL with the parameter is treated as a bare token.
func TokenFromURL(raw string, opts ...Option) (string, error) {
	o := applyOptions(opts)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoToken
	}
	idx := strings.IndexByte(raw, '?')
	if idx < 0 {
		if strings.Contains(raw, "://") {
			return "", ErrNoToken
		}
		return raw, nil
	}
	query := raw[idx+1:]
	if hash := strings.IndexByte(query, '#'); hash >= 0 {
		query = query[:hash]
	}
	prefix := o.param + "="
	for _, pair := range strings.Split(query, "&") {
		if strings.HasPrefix(pair, prefix) {
			if token := pair[len(prefix):]; token != "" {
				return token, nil
			}
		}
	}
	return "", ErrNoToken
}

// DecodeURL is TokenFromURL followed by Decode.
func DecodeURL(raw string, opts ...Option) (*model.List, error) {
	token, err := TokenFromURL(raw, opts...)
	if err != nil {
		return nil, err
	}
	return Decode(token)
}
