package infra

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

type isbn string

type version struct {
	major, minor int
}

func (v version) String() string {
	return strconv.Itoa(v.major) + "." + strconv.Itoa(v.minor)
}

func TestCanonicalKey(t *testing.T) {
	testcases := []struct {
		name string
		key  any
		want string
	}{
		{"string", "978184", "978184"},
		{"bytes", []byte("978184"), "978184"},
		{"int", 50, "50"},
		{"negative int8", int8(-3), "-3"},
		{"int64", int64(978184), "978184"},
		{"uint16", uint16(7), "7"},
		{"uint64", uint64(1) << 63, "9223372036854775808"},
		{"float64", 1.5, "1.5"},
		{"float64 integral", 2.0, "2"},
		{"float32", float32(0.25), "0.25"},
		{"bool", true, "true"},
		{"bool false", false, "false"},
		{"nil", nil, ""},
		{"stringer", version{1, 22}, "1.22"},
		{"named string", isbn("970783"), "970783"},
		{"struct", struct{ A int }{A: 1}, "{1}"},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.want, CanonicalKey(tc.key))
		})
	}
}

func TestCanonicalKey_SameEntry(t *testing.T) {
	require.Equal(t, CanonicalKey(42), CanonicalKey("42"))
	require.Equal(t, CanonicalKey(int64(42)), CanonicalKey(uint8(42)))
	require.Equal(t, CanonicalKey(int32(42)), CanonicalKey(uintptr(42)))
	require.Equal(t, CanonicalKey(float32(1.5)), CanonicalKey(1.5))
}
