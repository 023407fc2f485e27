package orderbookrepository

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTickIDPreservesOrder(t *testing.T) {
	ticks := []int64{math.MinInt64, -35000, -1, 0, 1, 35000, math.MaxInt64}

	for i := 1; i < len(ticks); i++ {
		require.Equal(t, -1, bytes.Compare(encodeTickID(ticks[i-1]), encodeTickID(ticks[i])))
	}

	for _, tick := range ticks {
		require.Equal(t, tick, decodeTickID(encodeTickID(tick)))
	}
}

func TestPrefixUpperBound(t *testing.T) {
	require.Equal(t, []byte{'t', 1}, prefixUpperBound([]byte{'t', 0}))
	require.Equal(t, []byte{'u'}, prefixUpperBound([]byte{'t', 0xff}))
	require.Nil(t, prefixUpperBound([]byte{0xff}))
}
