package rootfile_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/AliceO2Group/eventstat/internal/model"
	"github.com/AliceO2Group/eventstat/internal/rootfile"
	"github.com/AliceO2Group/eventstat/internal/rootfile/roottest"

	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot/rbase"
)

func TestOpen_Fail(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := rootfile.Open(filepath.Join(dir, "missing.root"))
	require.Error(t, err)

	garbage := filepath.Join(dir, "garbage.root")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a ROOT file"), 0o644))
	_, err = rootfile.Open(garbage)
	require.Error(t, err)
}

func TestEntryCount(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sgn_1_Kine.root")
	f := roottest.Create(t, path)
	roottest.WriteTree(t, f, "o2sim", 42)
	require.NoError(t, f.Put("Header", rbase.NewObjString("header")))
	require.NoError(t, f.Close())

	rf, err := rootfile.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, rf.Close())
	})

	require.Equal(t, path, rf.Path())
	require.ElementsMatch(t, []string{"o2sim", "Header"}, rf.Names())

	var testCases = []struct {
		scenario string
		given    string
		then     model.TableCount
	}{
		{
			scenario: "tree",
			given:    "o2sim",
			then:     model.TableCount{Path: path, Name: "o2sim", Entries: 42, Status: model.StatusCounted},
		},
		{
			scenario: "missing",
			given:    "o2simX",
			then:     model.TableCount{Path: path, Name: "o2simX", Status: model.StatusNoTable},
		},
		{
			scenario: "not a tree",
			given:    "Header",
			then:     model.TableCount{Path: path, Name: "Header", Status: model.StatusNotTree},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			actual := rf.EntryCount(tc.given)
			if tc.then.Counted() {
				require.NoError(t, actual.Err)
			} else {
				require.Error(t, actual.Err)
			}
			actual.Err = nil
			require.Equal(t, tc.then, actual)
		})
	}
}

func TestGroups(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AO2D.root")
	roottest.AOD(t, path, []roottest.Group{
		{
			Name: "DF_2261906078621670",
			Tables: []roottest.Table{
				{Name: "O2bc_001", Rows: 9},
				{Name: "O2mccollision_001", Rows: 5},
			},
		},
		{
			Name: "DF_2261906078621671",
			Tables: []roottest.Table{
				{Name: "O2mccollision", Rows: 7},
				{Name: "O2mccollisionXYZ", Rows: 100},
			},
			Objects: []string{"O2mccollision_002"},
		},
		{
			Name: "parentFiles",
		},
	}, "DF_metadata", "metaData")

	rf, err := rootfile.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, rf.Close())
	}()

	groups, err := rf.Groups(t.Context(), "DF_")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	byName := make(map[string]rootfile.Group, len(groups))
	for _, g := range groups {
		byName[g.Name] = g
	}
	g0, g1 := byName["DF_2261906078621670"], byName["DF_2261906078621671"]

	re := regexp.MustCompile(model.DefaultTablePattern)
	require.Equal(t, []string{"O2mccollision_001"}, g0.Tables(re))
	require.ElementsMatch(t, []string{"O2mccollision", "O2mccollision_002"}, g1.Tables(re))

	tc := g0.EntryCount("O2mccollision_001")
	require.True(t, tc.Counted())
	require.Equal(t, model.EventCount(5), tc.Entries)
	require.Equal(t, path+":DF_2261906078621670", tc.Path)

	tc = g1.EntryCount("O2mccollision")
	require.True(t, tc.Counted())
	require.Equal(t, model.EventCount(7), tc.Entries)

	tc = g1.EntryCount("O2mccollision_002")
	require.Equal(t, model.StatusNotTree, tc.Status)
	require.Zero(t, tc.Entries)
}

func TestClose(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sgn_1_Kine.root")
	roottest.Kinematics(t, path, "o2sim", 3)

	rf, err := rootfile.Open(path)
	require.NoError(t, err)
	require.NoError(t, rf.Close())
	require.NoError(t, rf.Close())

	require.Nil(t, rf.Names())
	tc := rf.EntryCount("o2sim")
	require.Equal(t, model.StatusReadFailed, tc.Status)
	_, err = rf.Groups(t.Context(), "DF_")
	require.Error(t, err)
}
