package datum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/internal/fakehost"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

func TestScalarRoundTrips(t *testing.T) {
	fakehost.Install(t)

	t.Run("int16", func(t *testing.T) {
		for _, v := range []int16{0, 1, -1, 32767, -32768} {
			got, err := datum.Int16(v).Int16()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("int32", func(t *testing.T) {
		for _, v := range []int32{0, 5, -7, 2147483647, -2147483648} {
			got, err := datum.Int32(v).Int32()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("int64", func(t *testing.T) {
		for _, v := range []int64{0, 1, -1, 9223372036854775807, -9223372036854775808} {
			got, err := datum.Int64(v).Int64()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("float32", func(t *testing.T) {
		for _, v := range []float32{0, 1.5, -2.25, 3.4e38} {
			got, err := datum.Float32(v).Float32()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("float64", func(t *testing.T) {
		for _, v := range []float64{0, 1.5, -2.25, 1.7976931348623157e308} {
			got, err := datum.Float64(v).Float64()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		for _, v := range []bool{true, false} {
			got, err := datum.Bool(v).Bool()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})
}

func TestVarlenaRoundTrips(t *testing.T) {
	h := fakehost.Install(t)

	t.Run("text", func(t *testing.T) {
		for _, v := range []string{"", "abcd", "héllo wörld"} {
			got, err := datum.Text(v).Text()
			require.NoError(t, err)
			assert.Equal(t, v, got)
		}
	})

	t.Run("bytea", func(t *testing.T) {
		v := []byte{0x00, 0xff, 0x10}
		got, err := datum.Bytea(v).Bytes()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})

	// Encoded varlenas live in the backend's context, not the Go heap.
	assert.Greater(t, h.LiveAllocations(), 0)
}

func TestDecodeNull(t *testing.T) {
	fakehost.Install(t)

	_, err := datum.Null(pgsys.OidInt4).Int32()
	require.Error(t, err)
	var cerr *datum.ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Reason, "null")

	_, err = datum.Null(pgsys.OidText).Text()
	require.Error(t, err)
}

func TestDecodeTagMismatch(t *testing.T) {
	fakehost.Install(t)

	_, err := datum.Int32(2).Int64()
	require.Error(t, err)
	var cerr *datum.ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, pgsys.OidInt4, cerr.Oid)

	_, err = datum.Bool(true).Text()
	require.Error(t, err)
}

func TestDecodeUnrecognizedTag(t *testing.T) {
	fakehost.Install(t)

	d := datum.FromRaw(42, false, pgsys.Oid(999))
	_, err := d.Int32()
	require.Error(t, err)
	var cerr *datum.ConversionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, pgsys.Oid(999), cerr.Oid)
}

func TestNullDatumRawIsZero(t *testing.T) {
	d := datum.FromRaw(1234, true, pgsys.OidInt4)
	assert.True(t, d.IsNull())
	assert.EqualValues(t, 0, d.Raw())
}
