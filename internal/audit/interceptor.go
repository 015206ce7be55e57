package audit

import (
	"context"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/http/bind"
	"github.com/spec-kit/todo-service/internal/auth"
)

// Wrap decorates a privileged handler so its arguments, result and failures
// are recorded. Errors and panics from fn reach the caller unchanged.
func Wrap[In, Out any](r *Recorder, method string, fn bind.Func[In, Out]) bind.Func[In, Out] {
	return func(c *fiber.Ctx, in *In) (out Out, err error) {
		route := c.Path()
		ctx := requestContext(c)
		userID, _ := c.Locals(auth.LocalUserID).(int64)

		r.Record(ctx, Entry{
			Kind:    KindRequest,
			Method:  method,
			UserID:  userID,
			Route:   route,
			Payload: encodeArgs(in),
		})

		defer func() {
			if rec := recover(); rec != nil {
				r.Record(ctx, Entry{Kind: KindError, Method: method, UserID: userID, Route: route, Error: describe(rec)})
				panic(rec)
			}
		}()

		out, err = fn(c, in)
		if err != nil {
			r.Record(ctx, Entry{Kind: KindError, Method: method, UserID: userID, Route: route, Error: err.Error()})
			return out, err
		}

		r.Record(ctx, Entry{Kind: KindResponse, Method: method, UserID: userID, Route: route, Payload: Encode(out)})
		return out, nil
	}
}

// encodeArgs renders each field of the handler input as its own JSON value.
func encodeArgs(in any) string {
	v := reflect.ValueOf(in)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Encode(nil)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return Encode(in)
	}

	parts := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		parts = append(parts, Encode(v.Field(i).Interface()))
	}
	return strings.Join(parts, ", ")
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
