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

package diagram

import (
	"errors"
	"log"
	"math"

	"github.com/aclements/go-moremath/scale"

	"github.com/ilhamster/diagramviz/expression"
	"github.com/ilhamster/diagramviz/feature"
	rendercontext "github.com/ilhamster/diagramviz/render_context"
	"github.com/ilhamster/diagramviz/units"
)

// ErrInvalidInterpolationRange is returned when a size is interpolated over
// an empty value range.
var ErrInvalidInterpolationRange = errors.New("invalid interpolation range: lower and upper values are equal")

// InterpolationSettings map a classification value to a diagram size.
type InterpolationSettings struct {
	LowerValue, UpperValue float64
	LowerSize, UpperSize   units.Size

	// ClassificationAttributeIsExpression selects between
	// ClassificationAttributeExpression and ClassificationField as the source
	// of the classification value.
	ClassificationAttributeIsExpression bool
	ClassificationField                 string
	ClassificationAttributeExpression   string
}

func (is *InterpolationSettings) validate() error {
	if is.UpperValue == is.LowerValue || math.IsNaN(is.UpperValue-is.LowerValue) {
		return ErrInvalidInterpolationRange
	}
	return nil
}

// Ratio returns the position of v between the lower and upper values,
// clamped to [0, 1].  When byArea is set the square root of the position is
// returned, making the area of the interpolated size proportional to v.
func (is *InterpolationSettings) Ratio(v float64, byArea bool) (float64, error) {
	if err := is.validate(); err != nil {
		return 0, err
	}
	r := scale.Linear{Min: is.LowerValue, Max: is.UpperValue, Clamp: true}.Map(v)
	if math.IsNaN(r) {
		r = 0
	}
	if byArea {
		r = math.Sqrt(r)
	}
	return r, nil
}

// SizeForValue interpolates the diagram size of classification value v.
func (is *InterpolationSettings) SizeForValue(v float64, s *Settings) (units.Size, error) {
	r, err := is.Ratio(v, s.ScaleByArea)
	if err != nil {
		return units.Size{}, err
	}
	size := units.Size{
		Width:  is.LowerSize.Width + r*(is.UpperSize.Width-is.LowerSize.Width),
		Height: is.LowerSize.Height + r*(is.UpperSize.Height-is.LowerSize.Height),
	}
	return applyMinimumSize(size, s.MinimumSize), nil
}

// applyMinimumSize grows size, keeping its aspect ratio, to fit a
// minimum x minimum box if it is no larger than minimum in both dimensions.
// A size with no extent in either dimension has no aspect ratio and becomes
// the minimum x minimum box.
func applyMinimumSize(size units.Size, minimum float64) units.Size {
	if minimum <= 0 || size.Width > minimum || size.Height > minimum {
		return size
	}
	square := size.Width == size.Height
	switch {
	case size.Width <= 0 || size.Height <= 0:
		return units.Size{Width: minimum, Height: minimum}
	case size.Width/size.Height <= 1:
		size = units.Size{Width: minimum * size.Width / size.Height, Height: minimum}
	default:
		size = units.Size{Width: minimum, Height: minimum * size.Height / size.Width}
	}
	if square {
		size.Width = size.Height
	}
	return size
}

// Value returns the classification value of f.  ok is false if the value is
// missing or not numeric.
func (is *InterpolationSettings) Value(f *feature.Feature, rc *rendercontext.Context) (v float64, ok bool) {
	if !is.ClassificationAttributeIsExpression {
		return f.Double(is.ClassificationField)
	}
	ret, err := rc.Evaluate(is.ClassificationAttributeExpression, rc.ExpressionContext().WithFeature(f))
	if err != nil {
		return 0, false
	}
	return feature.ToDouble(ret)
}

// ReferencedFields returns the fields the classification value is read from.
func (is *InterpolationSettings) ReferencedFields() []string {
	if !is.ClassificationAttributeIsExpression {
		if is.ClassificationField == "" {
			return nil
		}
		return []string{is.ClassificationField}
	}
	e, err := expression.Parse(is.ClassificationAttributeExpression)
	if err != nil {
		log.Printf("skipping classification expression: %s", err)
		return nil
	}
	return e.ReferencedColumns()
}
