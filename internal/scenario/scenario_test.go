package scenario

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavoas/tavoas/internal/models"
	"github.com/tavoas/tavoas/internal/parser"
)

func petStoreIndex(t *testing.T) *Index {
	t.Helper()
	p, err := parser.ParseFile("../../testdata/petstore.yaml")
	require.NoError(t, err)

	idx, err := NewIndex(p.GetOperations(parser.ExtractOptions{}), FirstWins)
	require.NoError(t, err)
	return idx
}

func TestLoadFile(t *testing.T) {
	sc, err := LoadFile("../../testdata/scenario.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Pet lifecycle", sc.TestName)
	assert.Empty(t, sc.Warnings)
	assert.Equal(t, []models.ScenarioItem{
		{OperationID: "createPets", Name: "Register a new pet"},
		{OperationID: "showPetById"},
		{OperationID: "deletePet", Name: "Remove it again"},
		{OperationID: "listPets", Name: "List everything"},
	}, sc.Items)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile("missing-scenario.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseMalformed(t *testing.T) {
	sc := Parse([]byte("scenario: [oops\n"))
	assert.Empty(t, sc.Items)
	require.Len(t, sc.Warnings, 1)
	assert.Equal(t, -1, sc.Warnings[0].Index)
}

func TestParseEmpty(t *testing.T) {
	sc := Parse(nil)
	assert.Empty(t, sc.Items)
	assert.Empty(t, sc.Warnings)
	assert.Empty(t, sc.TestName)
}

func TestResolve(t *testing.T) {
	sc, err := LoadFile("../../testdata/scenario.yaml")
	require.NoError(t, err)

	res := Resolve(petStoreIndex(t), sc)

	assert.Equal(t, "Pet lifecycle", res.TestName)
	require.Len(t, res.Steps, 3)

	assert.Equal(t, "Register a new pet", res.Steps[0].Name)
	assert.Equal(t, "POST", res.Steps[0].Method)
	assert.Equal(t, map[string]any{"name": "Rex", "tag": "dog"}, res.Steps[0].RequestExample)

	assert.Equal(t, "showPetById", res.Steps[1].Name, "name falls back to operationId")
	assert.Equal(t, "/pets/{petId}", res.Steps[1].Path)

	assert.Equal(t, "List everything", res.Steps[2].Name)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Index)
	assert.Equal(t, "deletePet", res.Warnings[0].OperationID)
}

func TestResolveMissingOperation(t *testing.T) {
	sc := models.Scenario{Items: []models.ScenarioItem{{OperationID: "missing"}}}

	res := Resolve(petStoreIndex(t), sc)

	assert.Empty(t, res.Steps)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].String(), "missing")
	assert.Equal(t, DefaultTestName, res.TestName)
}

func TestResolveCountsOnlyMatches(t *testing.T) {
	sc := Parse([]byte(`
scenario:
  - operationId: listPets
  - operationId: nope
  - operationId: listPets
    name: again
  - just-a-string
  - name: no id
`))

	res := Resolve(petStoreIndex(t), sc)

	require.Len(t, res.Steps, 2)
	assert.Equal(t, "listPets", res.Steps[0].Name)
	assert.Equal(t, "again", res.Steps[1].Name)
	assert.Len(t, res.Warnings, 3)
}

func TestIndexCollisionPolicy(t *testing.T) {
	ops := []models.Operation{
		{OperationID: "dup", Method: "GET", Path: "/a"},
		{OperationID: "", Method: "GET", Path: "/anonymous"},
		{OperationID: "dup", Method: "POST", Path: "/b"},
	}

	idx, err := NewIndex(ops, FirstWins)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	op, ok := idx.Lookup("dup")
	require.True(t, ok)
	assert.Equal(t, "/a", op.Path, "first declaration wins")
	require.Len(t, idx.Warnings(), 1)
	assert.Equal(t, "dup", idx.Warnings()[0].OperationID)

	_, ok = idx.Lookup("")
	assert.False(t, ok, "operations without an id are not indexed")

	_, err = NewIndex(ops, ErrorOnDuplicate)
	assert.ErrorIs(t, err, ErrDuplicateOperationID)
}

func TestResolveIncludesDuplicateWarnings(t *testing.T) {
	idx, err := NewIndex([]models.Operation{
		{OperationID: "dup", Method: "GET", Path: "/a"},
		{OperationID: "dup", Method: "GET", Path: "/b"},
	}, FirstWins)
	require.NoError(t, err)

	res := Resolve(idx, models.Scenario{Items: []models.ScenarioItem{{OperationID: "dup"}}})
	require.Len(t, res.Steps, 1)
	assert.Equal(t, "/a", res.Steps[0].Path)
	assert.Len(t, res.Warnings, 1)
}

func TestParseCollisionPolicy(t *testing.T) {
	for in, want := range map[string]CollisionPolicy{"": FirstWins, "first": FirstWins, "error": ErrorOnDuplicate} {
		got, err := ParseCollisionPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCollisionPolicy("last")
	assert.Error(t, err)
}

func TestResolveWithNilIndex(t *testing.T) {
	sc := models.Scenario{
		TestName: "empty",
		Items:    []models.ScenarioItem{{OperationID: "listPets"}, {Name: "no id"}},
	}

	var idx *Index
	res := Resolve(idx, sc)

	assert.Empty(t, res.Steps)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "listPets", res.Warnings[0].OperationID)
	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Warnings())
}
