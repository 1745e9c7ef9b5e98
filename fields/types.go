package fields

import (
	"io"
	"mime/multipart"
	"reflect"
	"time"
)

// Swagger 2.0 primitive type names.
//
// See: https://swagger.io/specification/v2/#data-types
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeFile    = "file"
)

var (
	timeType       = reflect.TypeFor[time.Time]()
	fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()
	fileType       = reflect.TypeFor[multipart.File]()
	readerType     = reflect.TypeFor[io.Reader]()
)

// TypeOf maps a Go type to a Swagger primitive type and format. Pointers are
// unwrapped. It reports false for composite types (slices, maps, structs
// other than time.Time) which have no primitive representation.
func TypeOf(t reflect.Type) (typ, format string, ok bool) {
	if t == nil {
		return TypeString, "", true
	}

	switch t {
	case fileHeaderType, fileType, readerType:
		return TypeFile, "", true
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == timeType {
		return TypeString, "date-time", true
	}

	switch t.Kind() {
	case reflect.Bool:
		return TypeBoolean, "", true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeInteger, "", true
	case reflect.Int64, reflect.Uint64:
		return TypeInteger, "int64", true
	case reflect.Float32:
		return TypeNumber, "float", true
	case reflect.Float64:
		return TypeNumber, "", true
	case reflect.String:
		return TypeString, "", true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return TypeString, "byte", true
		}
	}

	return "", "", false
}

// Native returns the source describing the Go type T: a primitive for
// scalars, an Array for slices and arrays, and a free-form object otherwise.
func Native[T any](opts ...Option) Source {
	return nativeSource(reflect.TypeFor[T](), opts)
}

func nativeSource(t reflect.Type, opts []Option) Source {
	if typ, format, ok := TypeOf(t); ok {
		return primitive(typ, format, opts)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return ListOf(nativeSource(t.Elem(), nil))
	}

	return primitive(TypeObject, "", opts)
}
