package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/pgqlir/internal/ir"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createPerson creates a Person vertex with a name and an age.
func createPerson(id, name string, age int64) Vertex {
	return Vertex{
		ID:    id,
		Label: "Person",
		Props: ir.IRObject{
			"name": ir.IRString(name),
			"age":  ir.IRInt(age),
		},
	}
}

// seedGraph stores the fixture graph:
//
//	v1 Alice 34 -knows-> v2 Bob 25 -knows-> v3 Anna 17
//	v1 Alice    -knows-> v3 Anna
//	v1 Alice    -works_at-> c1 Company "Acme"
func seedGraph(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	vertices := []Vertex{
		createPerson("v1", "Alice", 34),
		createPerson("v2", "Bob", 25),
		createPerson("v3", "Anna", 17),
		{ID: "c1", Label: "Company", Props: ir.IRObject{"name": ir.IRString("Acme")}},
	}
	for _, v := range vertices {
		if err := s.AddVertex(ctx, v); err != nil {
			t.Fatalf("AddVertex(%s) failed: %v", v.ID, err)
		}
	}

	edges := []Edge{
		{ID: "e1", Src: "v1", Dst: "v2", Label: "knows", Props: ir.IRObject{"since": ir.IRInt(2010)}},
		{ID: "e2", Src: "v2", Dst: "v3", Label: "knows", Props: ir.IRObject{"since": ir.IRInt(2020)}},
		{ID: "e3", Src: "v1", Dst: "v3", Label: "knows"},
		{ID: "e4", Src: "v1", Dst: "c1", Label: "works_at"},
	}
	for _, e := range edges {
		if err := s.AddEdge(ctx, e); err != nil {
			t.Fatalf("AddEdge(%s) failed: %v", e.ID, err)
		}
	}
}

func vertexIDs(vs []Vertex) []string {
	ids := []string{}
	for _, v := range vs {
		ids = append(ids, v.ID)
	}
	return ids
}

func edgeIDs(es []Edge) []string {
	ids := []string{}
	for _, e := range es {
		ids = append(ids, e.ID)
	}
	return ids
}
