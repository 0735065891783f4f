package datum

import (
	"fmt"
	"reflect"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// The reflection bridge used by the export adapter: it maps Go parameter and
// result types onto the codec so an arbitrary function signature can be
// marshaled without per-function glue.

var nativeOids = map[reflect.Type]pgsys.Oid{
	reflect.TypeOf(int16(0)):    pgsys.OidInt2,
	reflect.TypeOf(int32(0)):    pgsys.OidInt4,
	reflect.TypeOf(int64(0)):    pgsys.OidInt8,
	reflect.TypeOf(float32(0)):  pgsys.OidFloat4,
	reflect.TypeOf(float64(0)):  pgsys.OidFloat8,
	reflect.TypeOf(false):       pgsys.OidBool,
	reflect.TypeOf(""):          pgsys.OidText,
	reflect.TypeOf([]byte(nil)): pgsys.OidBytea,
}

// OidForType maps a Go type, or a pointer to one (the nullable form), to the
// oid it marshals as.
func OidForType(t reflect.Type) (pgsys.Oid, bool) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	oid, ok := nativeOids[t]
	return oid, ok
}

// Decode converts d into a value of type t. A pointer type is the nullable
// form: null decodes to nil, anything else to a pointer at the decoded
// value. A null datum against a non-pointer type is a ConversionError.
func Decode(d Datum, t reflect.Type) (reflect.Value, error) {
	if t.Kind() == reflect.Pointer {
		if d.IsNull() {
			return reflect.Zero(t), nil
		}
		elem, err := Decode(d, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	}

	var (
		v   any
		err error
	)
	switch t {
	case reflect.TypeOf(int16(0)):
		v, err = d.Int16()
	case reflect.TypeOf(int32(0)):
		v, err = d.Int32()
	case reflect.TypeOf(int64(0)):
		v, err = d.Int64()
	case reflect.TypeOf(float32(0)):
		v, err = d.Float32()
	case reflect.TypeOf(float64(0)):
		v, err = d.Float64()
	case reflect.TypeOf(false):
		v, err = d.Bool()
	case reflect.TypeOf(""):
		v, err = d.Text()
	case reflect.TypeOf([]byte(nil)):
		v, err = d.Bytes()
	default:
		return reflect.Value{}, convErr(d.TypeOid(), t.String(), "unsupported native type")
	}
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(v), nil
}

// Encode converts a native result value into a datum tagged oid. A nil
// pointer encodes the null datum; a non-nil pointer encodes its element.
func Encode(v reflect.Value, oid pgsys.Oid) (Datum, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Null(oid), nil
		}
		v = v.Elem()
	}

	want, ok := OidForType(v.Type())
	if !ok {
		return Null(oid), convErr(oid, v.Type().String(), "unsupported native type")
	}
	if want != oid {
		return Null(oid), convErr(oid, v.Type().String(),
			fmt.Sprintf("native type encodes as %s", want))
	}

	switch val := v.Interface().(type) {
	case int16:
		return Int16(val), nil
	case int32:
		return Int32(val), nil
	case int64:
		return Int64(val), nil
	case float32:
		return Float32(val), nil
	case float64:
		return Float64(val), nil
	case bool:
		return Bool(val), nil
	case string:
		return Text(val), nil
	case []byte:
		return Bytea(val), nil
	}
	return Null(oid), convErr(oid, v.Type().String(), "unsupported native type")
}
