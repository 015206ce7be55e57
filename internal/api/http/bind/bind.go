// Package bind adapts typed handler functions to fiber handlers.
//
// A handler declares its inputs as fields of a struct. Each field names its
// source with a `bind` tag:
//
//	type changePasswordInput struct {
//	    Caller auth.Identity              `bind:"identity"`
//	    Body   dto.UserChangePasswordRequest `bind:"body"`
//	}
//
// The layout is checked once when the route is registered, so a misdeclared
// identity slot fails at startup instead of yielding a zero value per request.
package bind

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/pkg/util/errorutil"
)

// Func is a handler that receives its decoded input and returns the response payload.
type Func[In, Out any] func(c *fiber.Ctx, in *In) (Out, error)

// Empty is returned by handlers that answer with a status code only.
type Empty struct{}

// ErrUnknownSource is returned for a bind tag that names no input source.
var ErrUnknownSource = errors.New("unknown bind source")

type source int

const (
	fromIdentity source = iota + 1
	fromBody
	fromParams
	fromQuery
)

type slot struct {
	index  int
	name   string
	source source
}

// Handler checks In's layout and returns a fiber handler that decodes In,
// calls fn and writes its result as JSON with status.
func Handler[In, Out any](status int, fn Func[In, Out]) (fiber.Handler, error) {
	slots, err := plan(reflect.TypeOf((*In)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	return func(c *fiber.Ctx) error {
		in := new(In)
		if err := decode(c, reflect.ValueOf(in).Elem(), slots); err != nil {
			return err
		}

		out, err := fn(c, in)
		if err != nil {
			return err
		}
		if _, empty := any(out).(Empty); empty {
			return c.SendStatus(status)
		}
		return c.Status(status).JSON(out)
	}, nil
}

// MustHandler is Handler for route registration; it panics on a layout error.
func MustHandler[In, Out any](status int, fn Func[In, Out]) fiber.Handler {
	h, err := Handler(status, fn)
	if err != nil {
		panic(err)
	}
	return h
}

// OK is MustHandler with status 200.
func OK[In, Out any](fn Func[In, Out]) fiber.Handler {
	return MustHandler(http.StatusOK, fn)
}

func plan(t reflect.Type) ([]slot, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("bind: input %s must be a struct", t)
	}

	var slots []slot
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		isIdentity, err := auth.Supports(f)
		if err != nil {
			return nil, fmt.Errorf("bind: %s: %w", t, err)
		}

		var src source
		switch tag := f.Tag.Get("bind"); {
		case isIdentity:
			src = fromIdentity
		case tag == "":
			continue
		case tag == "body":
			src = fromBody
		case tag == "params":
			src = fromParams
		case tag == "query":
			src = fromQuery
		default:
			return nil, fmt.Errorf("bind: %s.%s: %w %q", t, f.Name, ErrUnknownSource, tag)
		}

		if !f.IsExported() {
			return nil, fmt.Errorf("bind: %s.%s must be exported", t, f.Name)
		}
		if src != fromIdentity && f.Type.Kind() != reflect.Struct {
			return nil, fmt.Errorf("bind: %s.%s must be a struct to decode %s", t, f.Name, f.Tag.Get("bind"))
		}
		slots = append(slots, slot{index: i, name: f.Name, source: src})
	}
	return slots, nil
}

func decode(c *fiber.Ctx, v reflect.Value, slots []slot) error {
	for _, s := range slots {
		field := v.Field(s.index)
		if s.source == fromIdentity {
			identity, err := auth.Resolve(c)
			if err != nil {
				return errorutil.NewInternalError(err)
			}
			field.Set(reflect.ValueOf(identity))
			continue
		}

		target := field.Addr().Interface()
		var err error
		switch s.source {
		case fromBody:
			err = c.BodyParser(target)
		case fromParams:
			err = c.ParamsParser(target)
		case fromQuery:
			err = c.QueryParser(target)
		}
		if err != nil {
			return errorutil.NewValidationError(fmt.Sprintf("invalid %s", sourceName(s.source)))
		}
		if err := Validate(target); err != nil {
			return err
		}
	}
	return nil
}

func sourceName(s source) string {
	switch s {
	case fromBody:
		return "request body"
	case fromParams:
		return "path parameters"
	case fromQuery:
		return "query parameters"
	default:
		return "input"
	}
}
