package triggers

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Envelope is the JSON body of a Firestore document event, as delivered by
// Cloud Functions (gen1) or a relay. Value is absent for deletes, OldValue for creates.
type Envelope struct {
	OldValue *Document         `json:"oldValue,omitempty" validate:"omitempty"`
	Value    *Document         `json:"value,omitempty" validate:"omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// Document is a Firestore document snapshot in REST representation.
type Document struct {
	Name       string           `json:"name" validate:"required"`
	Fields     map[string]Value `json:"fields"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// Value is a Firestore typed value. Exactly one field is expected to be set.
type Value struct {
	NullValue      *string     `json:"nullValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	IntegerValue   *string     `json:"integerValue,omitempty"`
	DoubleValue    *float64    `json:"doubleValue,omitempty"`
	TimestampValue *string     `json:"timestampValue,omitempty"`
	StringValue    *string     `json:"stringValue,omitempty"`
	BytesValue     *string     `json:"bytesValue,omitempty"`
	ReferenceValue *string     `json:"referenceValue,omitempty"`
	GeoPointValue  *GeoPoint   `json:"geoPointValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
	MapValue       *MapValue   `json:"mapValue,omitempty"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ArrayValue holds the elements of an array field.
type ArrayValue struct {
	Values []Value `json:"values"`
}

// MapValue holds the fields of a map field.
type MapValue struct {
	Fields map[string]Value `json:"fields"`
}

// Data flattens the document into a plain map. A nil document yields nil.
func (d *Document) Data() (map[string]any, error) {
	if d == nil {
		return nil, nil
	}
	return decodeFields(d.Fields)
}

func decodeFields(fields map[string]Value) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		decoded, err := v.decode()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", k, err)
		}
		out[k] = decoded
	}
	return out, nil
}

func (v Value) decode() (any, error) {
	switch {
	case v.StringValue != nil:
		return *v.StringValue, nil
	case v.BooleanValue != nil:
		return *v.BooleanValue, nil
	case v.IntegerValue != nil:
		n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer value %q: %w", *v.IntegerValue, err)
		}
		return n, nil
	case v.DoubleValue != nil:
		return *v.DoubleValue, nil
	case v.TimestampValue != nil:
		ts, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
		if err != nil {
			return nil, fmt.Errorf("timestamp value %q: %w", *v.TimestampValue, err)
		}
		return ts, nil
	case v.BytesValue != nil:
		return *v.BytesValue, nil
	case v.ReferenceValue != nil:
		return *v.ReferenceValue, nil
	case v.GeoPointValue != nil:
		return *v.GeoPointValue, nil
	case v.ArrayValue != nil:
		items := make([]any, 0, len(v.ArrayValue.Values))
		for i, item := range v.ArrayValue.Values {
			decoded, err := item.decode()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, decoded)
		}
		return items, nil
	case v.MapValue != nil:
		return decodeFields(v.MapValue.Fields)
	default:
		// nullValue, or an empty value object
		return nil, nil
	}
}

// ToEvent converts the envelope into an Event for pattern. Params come from the
// document name; explicit Params in the envelope override them.
func (e *Envelope) ToEvent(pattern Pattern) (Event, error) {
	ev := Event{Params: make(map[string]string)}

	var name string
	switch {
	case e.Value != nil:
		name = e.Value.Name
	case e.OldValue != nil:
		name = e.OldValue.Name
	}
	if name == "" {
		return Event{}, errors.New("event has no named document")
	}
	params, ok := pattern.Match(name)
	if !ok {
		return Event{}, fmt.Errorf("document %q does not match %s", name, pattern)
	}
	ev.Params = params
	for k, v := range e.Params {
		ev.Params[k] = v
	}

	var err error
	if ev.Before, err = e.OldValue.Data(); err != nil {
		return Event{}, fmt.Errorf("decode old value: %w", err)
	}
	if ev.After, err = e.Value.Data(); err != nil {
		return Event{}, fmt.Errorf("decode value: %w", err)
	}
	return ev, nil
}
