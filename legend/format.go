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

package legend

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const maxFractionDigits = 6

// Formatter formats and parses legend values for one locale.
type Formatter struct {
	printer        *message.Printer
	decimal, group string
}

// NewFormatter returns a Formatter for tag.
func NewFormatter(tag language.Tag) *Formatter {
	f := &Formatter{printer: message.NewPrinter(tag)}
	f.decimal = separator(f.printer.Sprint(number.Decimal(1.5)))
	f.group = separator(f.printer.Sprint(number.Decimal(1234567)))
	return f
}

// separator returns the first run of non-digits in s.
func separator(s string) string {
	start := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if start < 0 {
		return ""
	}
	end := strings.IndexFunc(s[start:], unicode.IsDigit)
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

var defaultFormatter = NewFormatter(language.English)

func (f *Formatter) orDefault() *Formatter {
	if f == nil {
		return defaultFormatter
	}
	return f
}

// Format returns v in the shortest decimal form with no digit grouping, as
// used in size legend labels.  A nil Formatter formats in English.
func (f *Formatter) Format(v float64) string {
	f = f.orDefault()
	return f.printer.Sprint(number.Decimal(v, number.NoSeparator(), number.MaxFractionDigits(maxFractionDigits)))
}

// Parse parses a locale-formatted number.  Digit grouping is ignored, and
// the C-locale form is accepted as a fallback.
func (f *Formatter) Parse(s string) (float64, error) {
	f = f.orDefault()
	s = strings.TrimSpace(s)
	local := s
	if f.group != "" {
		local = strings.ReplaceAll(local, f.group, "")
	}
	if f.decimal != "" && f.decimal != "." {
		local = strings.ReplaceAll(local, f.decimal, ".")
	}
	if v, err := strconv.ParseFloat(local, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}
	return v, nil
}
