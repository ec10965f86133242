// Package normalizer turns free-form model output into a validated Trip.
//
// The text passes through an ordered list of named repair stages, is parsed
// as a JSON object, has its trip payload selected and is then decoded and
// validated. Every failure is an *Error carrying one of four codes; a partial
// Trip is never returned.
package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tripwise/internal/models/response_models"
)

const (
	tripKey      = "trip"
	itineraryKey = "itinerary"
)

// Pipeline holds an immutable stage list and is safe for concurrent use.
type Pipeline struct {
	stages   []Stage
	validate *validator.Validate
}

type Option func(*Pipeline)

// WithStages replaces the whole repair sequence.
func WithStages(stages ...Stage) Option {
	return func(p *Pipeline) {
		p.stages = append([]Stage(nil), stages...)
	}
}

// WithStage swaps the named stage for another implementation. Unknown names
// are ignored.
func WithStage(name string, apply func(string) (string, error)) Option {
	return func(p *Pipeline) {
		for i := range p.stages {
			if p.stages[i].Name == name {
				p.stages[i].Apply = apply
			}
		}
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		stages:   DefaultStages(),
		validate: newTripValidator(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultPipeline = New()

// Normalize runs the default pipeline.
func Normalize(raw string) (response_models.Trip, error) {
	return defaultPipeline.Normalize(raw)
}

func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

func (p *Pipeline) Normalize(raw string) (response_models.Trip, error) {
	text, err := p.Repair(raw)
	if err != nil {
		return response_models.Trip{}, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return response_models.Trip{}, malformed(text, err)
	}

	payload, err := selectTrip(doc)
	if err != nil {
		return response_models.Trip{}, err
	}
	return p.decodeTrip(payload)
}

// Repair applies the text stages in order and returns the text handed to the parser.
func (p *Pipeline) Repair(raw string) (string, error) {
	text := raw
	for _, stage := range p.stages {
		out, err := stage.Apply(text)
		if err != nil {
			var nerr *Error
			if errors.As(err, &nerr) {
				return "", nerr
			}
			return "", malformed(text, fmt.Errorf("%s stage: %w", stage.Name, err))
		}
		text = out
	}
	return text, nil
}

func selectTrip(doc map[string]json.RawMessage) (json.RawMessage, error) {
	if payload, ok := doc[tripKey]; ok {
		return payload, nil
	}
	if payload, ok := doc[itineraryKey]; ok {
		return payload, nil
	}
	return nil, &Error{Code: CodeMissingTripKey}
}

func (p *Pipeline) decodeTrip(payload json.RawMessage) (response_models.Trip, error) {
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return response_models.Trip{}, schemaViolation(tripKey, errors.New("trip is null"))
	}

	var trip response_models.Trip
	if err := checkExactKeys(payload, reflect.TypeOf(trip)); err != nil {
		return response_models.Trip{}, err
	}
	if err := json.Unmarshal(payload, &trip); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return response_models.Trip{}, schemaViolation(tripKey+"."+typeErr.Field, err)
		}
		return response_models.Trip{}, schemaViolation(tripKey, err)
	}

	if err := p.validate.Struct(trip); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return response_models.Trip{}, schemaViolation(fieldPath(fe.Namespace()), fmt.Errorf("failed %q rule", fe.Tag()))
		}
		return response_models.Trip{}, schemaViolation(tripKey, err)
	}

	if err := checkDayNumbers(trip.Days); err != nil {
		return response_models.Trip{}, err
	}
	return trip, nil
}

// checkDayNumbers rejects repeated day numbers. Gaps are tolerated.
func checkDayNumbers(days []response_models.Day) error {
	seen := make(map[int]struct{}, len(days))
	for i, d := range days {
		if _, dup := seen[d.Day]; dup {
			return schemaViolation(fmt.Sprintf("trip.days[%d].day", i), fmt.Errorf("duplicate day %d", d.Day))
		}
		seen[d.Day] = struct{}{}
	}
	return nil
}

func newTripValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

// fieldPath rewrites a validator namespace such as "Trip.days[0].title" to
// "trip.days[0].title".
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return tripKey
	}
	return tripKey + "." + rest
}
