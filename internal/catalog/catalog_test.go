package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"detprod-core/formula"
	"detprod-core/weights"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestDefault_OrderAndContent(t *testing.T) {
	list := Default()
	require.Len(t, list, 26)
	require.Equal(t, "TNT", list[0].Name)
	require.Equal(t, "H2", list[len(list)-1].Name)
	require.NoError(t, Validate(list))

	// Every built-in formula resolves against the built-in weights.
	for _, c := range list {
		_, err := weights.MolarWeight(formula.Parse(c.Formula), weights.Default())
		require.NoError(t, err, c.Name)
	}
}

func TestDefault_IsACopy(t *testing.T) {
	a := Default()
	a[0].Name = "changed"
	require.Equal(t, "TNT", Default()[0].Name)
}

func TestSelect(t *testing.T) {
	got, err := Select(Default(), []string{"rdx", "Nitrate Esters"})
	require.NoError(t, err)
	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"RDX", "EGDN", "Trinitroglycerin", "PETN"}, names)

	all, err := Select(Default(), nil)
	require.NoError(t, err)
	require.Len(t, all, len(Default()))

	_, err = Select(Default(), []string{"TNT", "unobtainium"})
	require.ErrorContains(t, err, `"unobtainium"`)
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(nil), ErrNoCompounds)
	require.ErrorContains(t, Validate([]Compound{{Formula: "C"}}), "name is required")
	require.ErrorContains(t, Validate([]Compound{{Name: "x"}}), "formula is required")
	require.ErrorContains(t, Validate([]Compound{
		{Name: "TNT", Formula: "C7H5N3O6"},
		{Name: "tnt", Formula: "C7H5N3O6"},
	}), "duplicate")
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, "cat.toml", `
[[compound]]
name = "TNT"
formula = "C7H5N3O6"
group = "nitroaromatics"

[[compound]]
name = "Urea nitrate"
formula = "CH5N3O4"
note = "salt"
`)
	list, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, []Compound{
		{Name: "TNT", Formula: "C7H5N3O6", Group: "nitroaromatics"},
		{Name: "Urea nitrate", Formula: "CH5N3O4", Note: "salt"},
	}, list)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorContains(t, err, "read catalog")

	bad := writeFile(t, "bad.toml", "[[compound]\nname=")
	_, err = LoadFile(bad)
	require.ErrorContains(t, err, "parse catalog")

	unknown := writeFile(t, "unknown.toml", "[[compound]]\nname=\"a\"\nformula=\"C\"\ncolor=\"red\"\n")
	_, err = LoadFile(unknown)
	require.ErrorContains(t, err, "unknown key")

	empty := writeFile(t, "empty.toml", "")
	_, err = LoadFile(empty)
	require.True(t, errors.Is(err, ErrNoCompounds), "got %v", err)
}

func TestLoadFiles_DuplicateAcrossFiles(t *testing.T) {
	a := writeFile(t, "a.toml", "[[compound]]\nname=\"X\"\nformula=\"C\"\n")
	b := writeFile(t, "b.toml", "[[compound]]\nname=\"x\"\nformula=\"H2\"\n")
	_, _, err := LoadFiles([]string{a, b})
	require.ErrorContains(t, err, "duplicate")
}

func TestLoadFiles_MergesWeights(t *testing.T) {
	a := writeFile(t, "a.toml", "[weights]\nXe = 131.0\nS = 32.0\n\n[[compound]]\nname=\"xenon difluoride\"\nformula=\"XeF2\"\n")
	b := writeFile(t, "b.toml", "[weights]\nXe = 131.29\nF = 18.998\n\n[[compound]]\nname=\"TNT\"\nformula=\"C7H5N3O6\"\n")
	list, cat, err := LoadFiles([]string{a, b})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, weights.Table{"Xe": 131.29, "S": 32, "F": 18.998}, cat)

	tbl, err := LoadWeights("", cat)
	require.NoError(t, err)
	require.Equal(t, 131.29, tbl["Xe"])
	require.Equal(t, 12.011, tbl["C"])

	over := writeFile(t, "w.toml", "[weights]\nS = 32.06\n")
	tbl, err = LoadWeights(over, cat)
	require.NoError(t, err)
	require.Equal(t, 32.06, tbl["S"])
	require.Equal(t, 18.998, tbl["F"])

	plain := writeFile(t, "plain.toml", "[[compound]]\nname=\"RDX\"\nformula=\"C3H6N6O6\"\n")
	_, cat, err = LoadFiles([]string{plain})
	require.NoError(t, err)
	require.Nil(t, cat)
}

func TestLoadWeights(t *testing.T) {
	tbl, err := LoadWeights("")
	require.NoError(t, err)
	require.Equal(t, weights.Default(), tbl)

	p := writeFile(t, "w.toml", "[weights]\nS = 32.06\nXe = 131.29\n")
	tbl, err = LoadWeights(p)
	require.NoError(t, err)
	require.Equal(t, 32.06, tbl["S"])
	require.Equal(t, 131.29, tbl["Xe"])
	require.Equal(t, 12.011, tbl["C"])

	for _, v := range []string{"-1", "0", "nan", "inf"} {
		bad := writeFile(t, "bad.toml", "[weights]\nS = "+v+"\n")
		_, err = LoadWeights(bad)
		require.ErrorContains(t, err, "must be finite and > 0", v)
	}
}
