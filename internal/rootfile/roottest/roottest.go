// Package roottest creates small ROOT files shaped like O2DPG simulation
// output for tests.
package roottest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rbase"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Table is a tree with Rows entries.
type Table struct {
	Name string
	Rows int
}

// Group is a data frame directory of an AO2D file. Objects are stored as
// strings, they are there to test non-tree members.
type Group struct {
	Name    string
	Tables  []Table
	Objects []string
}

// Kinematics writes a kinematics file at path with a tree of the given events.
func Kinematics(t testing.TB, path string, tree string, events int) {
	t.Helper()
	f := Create(t, path)
	WriteTree(t, f, tree, events)
	require.NoError(t, f.Close())
}

// AOD writes an AO2D-like file at path with the groups and top-level objects.
func AOD(t testing.TB, path string, groups []Group, objects ...string) {
	t.Helper()
	f := Create(t, path)
	for _, g := range groups {
		dir, err := f.Mkdir(g.Name)
		require.NoError(t, err)
		for _, tbl := range g.Tables {
			WriteTree(t, dir, tbl.Name, tbl.Rows)
		}
		for _, name := range g.Objects {
			require.NoError(t, dir.Put(name, rbase.NewObjString(name)))
		}
	}
	for _, name := range objects {
		require.NoError(t, f.Put(name, rbase.NewObjString(name)))
	}
	require.NoError(t, f.Close())
}

// Objects writes a file at path with a string object for each name.
func Objects(t testing.TB, path string, names ...string) {
	t.Helper()
	AOD(t, path, nil, names...)
}

// WriteTree writes a tree named name with rows entries into dir.
func WriteTree(t testing.TB, dir riofs.Directory, name string, rows int) {
	t.Helper()
	var (
		index  int32
		weight float32
	)
	w, err := rtree.NewWriter(dir, name, []rtree.WriteVar{
		{Name: "fIndexMcCollisions", Value: &index},
		{Name: "fWeight", Value: &weight},
	})
	require.NoError(t, err)
	for i := range rows {
		index = int32(i)
		weight = 1
		_, err := w.Write()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

// Create creates a ROOT file for writing, the caller closes it.
func Create(t testing.TB, path string) *riofs.File {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := groot.Create(path)
	require.NoError(t, err)
	return f
}
