// Package export streams output rows as Arrow IPC record batches, next to
// the ROOT ntuples, for analysis outside of the ROOT ecosystem.
package export

import (
	"fmt"
	"io"
	"reflect"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/decibelcooper/zllplot/ntuple"
)

// DefaultBatchSize is the number of rows per record batch.
const DefaultBatchSize = 4096

// ArrowWriter appends the current value of a bound row struct to an Arrow
// IPC stream. Scalar columns map to Arrow primitives; float32 slices map to
// list<float32>. Their count columns are kept as regular int32 columns.
type ArrowWriter struct {
	w       io.Writer
	closer  io.Closer
	row     reflect.Value
	cols    []ntuple.Column
	schema  *arrow.Schema
	builder *array.RecordBuilder
	ipc     *ipc.Writer
	batch   int
	pending int
}

// NewArrowWriter binds row, a pointer to a struct with groot tags, to an
// IPC stream written to w. If w is an io.Closer it is closed by Close.
func NewArrowWriter(w io.Writer, row any) (*ArrowWriter, error) {
	cols := ntuple.Columns(row)
	fields := make([]arrow.Field, 0, len(cols))
	for _, col := range cols {
		dt, err := dataType(col)
		if err != nil {
			return nil, err
		}
		fields = append(fields, arrow.Field{Name: col.Name, Type: dt})
	}

	mem := memory.DefaultAllocator
	schema := arrow.NewSchema(fields, nil)
	aw := &ArrowWriter{
		w:       w,
		row:     reflect.ValueOf(row).Elem(),
		cols:    cols,
		schema:  schema,
		builder: array.NewRecordBuilder(mem, schema),
		ipc:     ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem)),
		batch:   DefaultBatchSize,
	}
	if c, ok := w.(io.Closer); ok {
		aw.closer = c
	}
	return aw, nil
}

func dataType(col ntuple.Column) (arrow.DataType, error) {
	switch col.Kind {
	case reflect.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case reflect.Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case reflect.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case reflect.Uint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case reflect.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case reflect.Uint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case reflect.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case reflect.Slice:
		if col.Elem == reflect.Float32 {
			return arrow.ListOf(arrow.PrimitiveTypes.Float32), nil
		}
	}
	return nil, fmt.Errorf("column %q: unsupported kind %v", col.Name, col.Kind)
}

func (aw *ArrowWriter) Schema() *arrow.Schema { return aw.schema }

// Write appends the current row, flushing a record batch when full.
func (aw *ArrowWriter) Write() error {
	for i, col := range aw.cols {
		v := aw.row.FieldByIndex(col.Index)
		switch b := aw.builder.Field(i).(type) {
		case *array.Float64Builder:
			b.Append(v.Float())
		case *array.Float32Builder:
			b.Append(float32(v.Float()))
		case *array.Int32Builder:
			b.Append(int32(v.Int()))
		case *array.Uint32Builder:
			b.Append(uint32(v.Uint()))
		case *array.Int64Builder:
			b.Append(v.Int())
		case *array.Uint64Builder:
			b.Append(v.Uint())
		case *array.BooleanBuilder:
			b.Append(v.Bool())
		case *array.ListBuilder:
			b.Append(true)
			vb := b.ValueBuilder().(*array.Float32Builder)
			vb.AppendValues(v.Interface().([]float32), nil)
		}
	}

	aw.pending++
	if aw.pending >= aw.batch {
		return aw.flush()
	}
	return nil
}

func (aw *ArrowWriter) flush() error {
	if aw.pending == 0 {
		return nil
	}
	rec := aw.builder.NewRecord()
	defer rec.Release()

	aw.pending = 0
	if err := aw.ipc.Write(rec); err != nil {
		return fmt.Errorf("could not write record batch: %w", err)
	}
	return nil
}

// Close flushes the pending rows and ends the stream.
func (aw *ArrowWriter) Close() error {
	defer aw.builder.Release()

	if err := aw.flush(); err != nil {
		return err
	}
	if err := aw.ipc.Close(); err != nil {
		return fmt.Errorf("could not close IPC stream: %w", err)
	}
	if aw.closer != nil {
		return aw.closer.Close()
	}
	return nil
}
