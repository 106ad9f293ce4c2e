package ntuple

import (
	"fmt"
	"reflect"
	"strings"

	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Column describes one exported field of a row struct. Row structs name
// their branches with `groot:"name"` tags; variable-length slices carry
// their count branch as `groot:"name[count]"`.
type Column struct {
	Name  string
	Count string
	Index []int
	Kind  reflect.Kind
	Elem  reflect.Kind
}

// Columns lists the tagged fields of the struct pointed to by ptr. Fields
// of embedded structs are listed in place.
func Columns(ptr any) []Column {
	rt := reflect.TypeOf(ptr)
	if rt.Kind() != reflect.Pointer || rt.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("ntuple: expected a pointer to a struct, got %T", ptr))
	}
	return columnsOf(rt.Elem(), nil)
}

func columnsOf(rt reflect.Type, parent []int) []Column {
	var cols []Column
	for i := 0; i < rt.NumField(); i++ {
		ft := rt.Field(i)
		index := append(append([]int(nil), parent...), i)

		if ft.Anonymous && ft.Type.Kind() == reflect.Struct {
			cols = append(cols, columnsOf(ft.Type, index)...)
			continue
		}

		tag, ok := ft.Tag.Lookup("groot")
		if !ok || !ft.IsExported() {
			continue
		}

		col := Column{Name: tag, Index: index, Kind: ft.Type.Kind()}
		if beg := strings.Index(tag, "["); beg > 0 && strings.HasSuffix(tag, "]") {
			col.Name = tag[:beg]
			col.Count = tag[beg+1 : len(tag)-1]
		}
		if col.Kind == reflect.Slice {
			col.Elem = ft.Type.Elem().Kind()
		}
		cols = append(cols, col)
	}
	return cols
}

// WriteVars binds every tagged field of ptr to an output branch.
func WriteVars(ptr any) []rtree.WriteVar {
	rv := reflect.ValueOf(ptr).Elem()
	cols := Columns(ptr)
	wvars := make([]rtree.WriteVar, 0, len(cols))
	for _, col := range cols {
		wvars = append(wvars, rtree.WriteVar{
			Name:  col.Name,
			Value: rv.FieldByIndex(col.Index).Addr().Interface(),
			Count: col.Count,
		})
	}
	return wvars
}

// ReadVars binds the tagged fields of ptr to the branches of the same name.
// With names given, only those columns are bound.
func ReadVars(ptr any, names ...string) []rtree.ReadVar {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}

	rv := reflect.ValueOf(ptr).Elem()
	var rvars []rtree.ReadVar
	for _, col := range Columns(ptr) {
		if len(want) > 0 && !want[col.Name] {
			continue
		}
		rvars = append(rvars, rtree.ReadVar{
			Name:  col.Name,
			Value: rv.FieldByIndex(col.Index).Addr().Interface(),
		})
	}
	return rvars
}

// RowWriter persists the current content of a bound row.
type RowWriter interface {
	Write() error
	Close() error
}

// TreeWriter writes a bound row struct to the Events tree of a new file.
type TreeWriter struct {
	f *riofs.File
	w rtree.Writer
}

// NewTreeWriter creates path and an Events tree whose branches are bound to
// the tagged fields of row. Each call to Write appends the current row.
func NewTreeWriter(path string, row any) (*TreeWriter, error) {
	f, err := Create(path)
	if err != nil {
		return nil, err
	}

	w, err := rtree.NewWriter(f, TreeName, WriteVars(row), rtree.WithTitle(TreeName))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("could not create tree in %q: %w", path, err)
	}
	return &TreeWriter{f: f, w: w}, nil
}

func (tw *TreeWriter) Write() error {
	_, err := tw.w.Write()
	return err
}

func (tw *TreeWriter) Close() error {
	if err := tw.w.Close(); err != nil {
		tw.f.Close()
		return fmt.Errorf("could not close tree: %w", err)
	}
	return tw.f.Close()
}

// ReadTree opens path and calls fn once per entry with ptr filled from the
// bound columns.
func ReadTree(path string, ptr any, fn func(entry int64) error, names ...string) error {
	f, tree, err := OpenTree(path, TreeName)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := rtree.NewReader(tree, ReadVars(ptr, names...))
	if err != nil {
		return fmt.Errorf("could not read tree in %q: %w", path, err)
	}
	defer r.Close()

	return r.Read(func(ctx rtree.RCtx) error {
		return fn(ctx.Entry)
	})
}
