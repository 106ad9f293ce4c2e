package export

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Run    uint32    `groot:"runNum"`
	Pt     float64   `groot:"lep1_pt"`
	Q      int32     `groot:"q1"`
	N      int32     `groot:"nLHEWeight"`
	LHE    []float32 `groot:"lheweight[nLHEWeight]"`
	hidden float64
}

func TestArrowWriterRoundTrip(t *testing.T) {
	var (
		buf bytes.Buffer
		r   row
	)

	w, err := NewArrowWriter(&buf, &r)
	require.NoError(t, err)
	w.batch = 2

	for i := 0; i < 5; i++ {
		r.Run = uint32(i)
		r.Pt = 10 * float64(i)
		r.Q = int32(1 - 2*(i%2))
		r.LHE = []float32{1, float32(i)}
		r.N = int32(len(r.LHE))
		require.NoError(t, w.Write())
	}
	require.NoError(t, w.Close())

	assert.Equal(t, 5, w.Schema().NumFields())
	assert.Equal(t, "lheweight", w.Schema().Field(4).Name)

	rdr, err := ipc.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer rdr.Release()

	var (
		batches int
		rows    int64
		pts     []float64
	)
	for rdr.Next() {
		rec := rdr.Record()
		batches++
		rows += rec.NumRows()
		col := rec.Column(1).(*array.Float64)
		for i := 0; i < col.Len(); i++ {
			pts = append(pts, col.Value(i))
		}
	}
	require.NoError(t, rdr.Err())

	assert.Equal(t, 3, batches)
	assert.Equal(t, int64(5), rows)
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, pts)
}

func TestArrowWriterRejectsUnsupported(t *testing.T) {
	var r struct {
		Name string `groot:"name"`
	}
	_, err := NewArrowWriter(&bytes.Buffer{}, &r)
	require.Error(t, err)
}
