package datum_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/internal/fakehost"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

func TestOidForType(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want pgsys.Oid
	}{
		{reflect.TypeOf(int16(0)), pgsys.OidInt2},
		{reflect.TypeOf(int32(0)), pgsys.OidInt4},
		{reflect.TypeOf(int64(0)), pgsys.OidInt8},
		{reflect.TypeOf(float32(0)), pgsys.OidFloat4},
		{reflect.TypeOf(float64(0)), pgsys.OidFloat8},
		{reflect.TypeOf(false), pgsys.OidBool},
		{reflect.TypeOf(""), pgsys.OidText},
		{reflect.TypeOf([]byte(nil)), pgsys.OidBytea},
		{reflect.TypeOf((*int32)(nil)), pgsys.OidInt4},
		{reflect.TypeOf((*string)(nil)), pgsys.OidText},
	}
	for _, tt := range tests {
		oid, ok := datum.OidForType(tt.typ)
		require.True(t, ok, "type %s", tt.typ)
		assert.Equal(t, tt.want, oid)
	}

	_, ok := datum.OidForType(reflect.TypeOf(struct{}{}))
	assert.False(t, ok)
	_, ok = datum.OidForType(reflect.TypeOf(int(0)))
	assert.False(t, ok, "platform-sized int must be rejected")
}

func TestDecodePointerForms(t *testing.T) {
	fakehost.Install(t)

	t.Run("null to nil", func(t *testing.T) {
		v, err := datum.Decode(datum.Null(pgsys.OidInt4), reflect.TypeOf((*int32)(nil)))
		require.NoError(t, err)
		assert.True(t, v.IsNil())
	})

	t.Run("value to pointer", func(t *testing.T) {
		v, err := datum.Decode(datum.Int32(41), reflect.TypeOf((*int32)(nil)))
		require.NoError(t, err)
		require.False(t, v.IsNil())
		assert.Equal(t, int32(41), v.Elem().Interface())
	})

	t.Run("null to value errors", func(t *testing.T) {
		_, err := datum.Decode(datum.Null(pgsys.OidInt4), reflect.TypeOf(int32(0)))
		var cerr *datum.ConversionError
		require.ErrorAs(t, err, &cerr)
	})
}

func TestEncodeForms(t *testing.T) {
	fakehost.Install(t)

	t.Run("value", func(t *testing.T) {
		d, err := datum.Encode(reflect.ValueOf(int32(5)), pgsys.OidInt4)
		require.NoError(t, err)
		got, err := d.Int32()
		require.NoError(t, err)
		assert.Equal(t, int32(5), got)
	})

	t.Run("nil pointer to null", func(t *testing.T) {
		d, err := datum.Encode(reflect.ValueOf((*int32)(nil)), pgsys.OidInt4)
		require.NoError(t, err)
		assert.True(t, d.IsNull())
		assert.Equal(t, pgsys.OidInt4, d.TypeOid())
	})

	t.Run("pointer to value", func(t *testing.T) {
		v := int32(9)
		d, err := datum.Encode(reflect.ValueOf(&v), pgsys.OidInt4)
		require.NoError(t, err)
		got, err := d.Int32()
		require.NoError(t, err)
		assert.Equal(t, int32(9), got)
	})

	t.Run("declared type disagreement", func(t *testing.T) {
		_, err := datum.Encode(reflect.ValueOf(int32(5)), pgsys.OidInt8)
		var cerr *datum.ConversionError
		require.ErrorAs(t, err, &cerr)
	})
}

func TestReflectRoundTrip(t *testing.T) {
	fakehost.Install(t)

	for _, v := range []any{
		int16(7), int32(-3), int64(1 << 40), float32(2.5), float64(-0.125),
		true, "round trip", []byte{1, 2, 3},
	} {
		rv := reflect.ValueOf(v)
		oid, ok := datum.OidForType(rv.Type())
		require.True(t, ok)

		d, err := datum.Encode(rv, oid)
		require.NoError(t, err)

		back, err := datum.Decode(d, rv.Type())
		require.NoError(t, err)
		assert.Equal(t, v, back.Interface())
	}
}
