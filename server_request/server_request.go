/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package serverrequest wraps an incoming map server request: its URL,
// method, headers and case-insensitive query parameters.
package serverrequest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Method is a request method.
type Method int

// Methods.
const (
	HeadMethod Method = iota
	PutMethod
	GetMethod
	PostMethod
	DeleteMethod
	PatchMethod
)

var methodNames = map[Method]string{
	HeadMethod:   http.MethodHead,
	PutMethod:    http.MethodPut,
	GetMethod:    http.MethodGet,
	PostMethod:   http.MethodPost,
	DeleteMethod: http.MethodDelete,
	PatchMethod:  http.MethodPatch,
}

func (m Method) String() string {
	return methodNames[m]
}

// ParseMethod returns the Method named s, case-insensitively.
func ParseMethod(s string) (Method, bool) {
	for m, name := range methodNames {
		if strings.EqualFold(name, s) {
			return m, true
		}
	}
	return GetMethod, false
}

// Header is a well-known header which may also be supplied through the
// environment, as a CGI meta-variable.
type Header string

// Well-known headers.
const (
	Host                Header = "Host"
	Forwarded           Header = "Forwarded"
	XForwardedHost      Header = "X-Forwarded-Host"
	XForwardedProto     Header = "X-Forwarded-Proto"
	XServiceURL         Header = "X-Service-Url"
	XLegendServiceURL   Header = "X-Legend-Service-Url"
	XFeatureServiceURL  Header = "X-Feature-Service-Url"
	XCoverageServiceURL Header = "X-Coverage-Service-Url"
)

// EnvName returns the environment variable carrying h:  HTTP_ followed by
// the upper-cased name with dashes replaced by underscores.
func (h Header) EnvName() string {
	return "HTTP_" + strings.ReplaceAll(strings.ToUpper(string(h)), "-", "_")
}

// Request is a server request.  Parameter names are case-insensitive; the
// URL's query always reflects the current parameters.
type Request struct {
	url         *url.URL
	originalURL *url.URL
	method      Method
	headers     http.Header
	params      map[string]string
	data        []byte
	// Getenv looks up environment variables.  It defaults to os.Getenv.
	Getenv func(string) string
}

// New returns a Request for the provided URL.
func New(rawURL string, method Method, headers map[string]string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	r := &Request{
		originalURL: cloneURL(u),
		method:      method,
		headers:     http.Header{},
		Getenv:      os.Getenv,
	}
	for name, value := range headers {
		r.headers.Set(name, value)
	}
	r.SetURL(u)
	return r, nil
}

// FromHTTP returns a Request for an incoming HTTP request, consuming its
// body.
func FromHTTP(hr *http.Request) (*Request, error) {
	u := cloneURL(hr.URL)
	if u.Host == "" {
		u.Host = hr.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if hr.TLS != nil {
			u.Scheme = "https"
		}
	}
	method, ok := ParseMethod(hr.Method)
	if !ok {
		return nil, fmt.Errorf("unsupported request method '%s'", hr.Method)
	}
	r, err := New(u.String(), method, nil)
	if err != nil {
		return nil, err
	}
	for name, values := range hr.Header {
		if len(values) > 0 {
			r.headers.Set(name, values[0])
		}
	}
	if hr.Body != nil {
		if r.data, err = io.ReadAll(hr.Body); err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}
	return r, nil
}

func cloneURL(u *url.URL) *url.URL {
	ret := *u
	if u.User != nil {
		user := *u.User
		ret.User = &user
	}
	return &ret
}

// URL returns the request URL.
func (r *Request) URL() *url.URL {
	return cloneURL(r.url)
}

// SetURL replaces the request URL, and reloads the parameters from its
// query.
func (r *Request) SetURL(u *url.URL) {
	r.url = cloneURL(u)
	r.params = map[string]string{}
	for key, values := range u.Query() {
		if len(values) > 0 {
			r.params[strings.ToUpper(key)] = values[len(values)-1]
		}
	}
}

// OriginalURL returns the URL the request was created with, or the one set
// with SetOriginalURL.
func (r *Request) OriginalURL() *url.URL {
	return cloneURL(r.originalURL)
}

func (r *Request) SetOriginalURL(u *url.URL) {
	r.originalURL = cloneURL(u)
}

func (r *Request) Method() Method {
	return r.method
}

func (r *Request) SetMethod(m Method) {
	r.method = m
}

// Data returns the request body.
func (r *Request) Data() []byte {
	return r.data
}

// Header returns the named header, or "".
func (r *Request) Header(name string) string {
	return r.headers.Get(name)
}

// SetHeader sets the named header.
func (r *Request) SetHeader(name, value string) {
	r.headers.Set(name, value)
}

// RemoveHeader removes the named header.
func (r *Request) RemoveHeader(name string) {
	r.headers.Del(name)
}

// Headers returns a copy of all headers.
func (r *Request) Headers() map[string]string {
	ret := make(map[string]string, len(r.headers))
	for name := range r.headers {
		ret[name] = r.headers.Get(name)
	}
	return ret
}

// WellKnownHeader returns the header h, falling back to its environment
// variable when the request does not carry it.
func (r *Request) WellKnownHeader(h Header) string {
	if v := r.Header(string(h)); v != "" {
		return v
	}
	if r.Getenv == nil {
		return ""
	}
	return r.Getenv(h.EnvName())
}

// Parameters returns a copy of the parameters, keyed by upper-cased name.
func (r *Request) Parameters() map[string]string {
	ret := make(map[string]string, len(r.params))
	for k, v := range r.params {
		ret[k] = v
	}
	return ret
}

// Parameter returns the named parameter, or def if it is absent or empty.
func (r *Request) Parameter(key, def string) string {
	if v := r.params[strings.ToUpper(key)]; v != "" {
		return v
	}
	return def
}

// SetParameter sets the named parameter.
func (r *Request) SetParameter(key, value string) {
	r.params[strings.ToUpper(key)] = value
	r.syncQuery()
}

// RemoveParameter removes the named parameter.
func (r *Request) RemoveParameter(key string) {
	delete(r.params, strings.ToUpper(key))
	r.syncQuery()
}

func (r *Request) syncQuery() {
	q := url.Values{}
	for k, v := range r.params {
		q.Set(k, v)
	}
	r.url.RawQuery = q.Encode()
}

// QueryParameter returns the named query item of the URL, decoded, or def
// if the query has no such item.  Unlike Parameter, the name is
// case-sensitive.
func (r *Request) QueryParameter(name, def string) string {
	q := r.url.Query()
	if !q.Has(name) {
		return def
	}
	return q.Get(name)
}

// ScriptName returns the SCRIPT_NAME environment variable.
func (r *Request) ScriptName() string {
	if r.Getenv == nil {
		return ""
	}
	return r.Getenv("SCRIPT_NAME")
}
