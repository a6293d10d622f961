package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
	"github.com/roach88/pgqlir/internal/querysql"
)

// ErrNotFound is returned when a vertex or edge id does not exist.
var ErrNotFound = errors.New("not found")

// Vertex is a labeled node of the property graph.
type Vertex struct {
	ID    string
	Label string
	Props ir.IRObject
}

// Edge is a labeled, directed connection from Src to Dst.
type Edge struct {
	ID    string
	Src   string
	Dst   string
	Label string
	Props ir.IRObject
}

// AddVertex inserts a vertex.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) AddVertex(ctx context.Context, v Vertex) error {
	props, err := marshalProps(v.Props)
	if err != nil {
		return fmt.Errorf("add vertex %q: %w", v.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vertices (id, label, props)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, v.ID, v.Label, props)
	if err != nil {
		return fmt.Errorf("add vertex %q: %w", v.ID, err)
	}
	return nil
}

// AddEdge inserts an edge.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
//
// Note: Both endpoints must exist (foreign key constraint).
func (s *Store) AddEdge(ctx context.Context, e Edge) error {
	props, err := marshalProps(e.Props)
	if err != nil {
		return fmt.Errorf("add edge %q: %w", e.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO edges (id, src, dst, label, props)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, e.ID, e.Src, e.Dst, e.Label, props)
	if err != nil {
		return fmt.Errorf("add edge %q: %w", e.ID, err)
	}
	return nil
}

// ReadVertex retrieves a vertex by ID.
// Returns an error wrapping ErrNotFound if no vertex has that ID.
func (s *Store) ReadVertex(ctx context.Context, id string) (Vertex, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, props FROM vertices WHERE id = ?
	`, id)

	var v Vertex
	var props string
	if err := row.Scan(&v.ID, &v.Label, &props); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vertex{}, fmt.Errorf("vertex %q: %w", id, ErrNotFound)
		}
		return Vertex{}, fmt.Errorf("read vertex %q: %w", id, err)
	}
	var err error
	if v.Props, err = unmarshalProps(props); err != nil {
		return Vertex{}, fmt.Errorf("read vertex %q: %w", id, err)
	}
	return v, nil
}

// MatchVertices returns every vertex that, bound to v, satisfies filter.
// A nil filter matches all vertices. binds supplies the values of the
// filter's bind parameters by index.
//
// Results are ordered by id for deterministic output.
func (s *Store) MatchVertices(ctx context.Context, v ir.QueryVariable, filter queryir.Expr, binds ...any) ([]Vertex, error) {
	if v.Type != ir.VarTypeVertex {
		return nil, fmt.Errorf("match vertices: %s is not a vertex variable", v)
	}
	rows, err := s.match(ctx, v, filter, binds)
	if err != nil {
		return nil, fmt.Errorf("match vertices: %w", err)
	}
	defer rows.Close()

	var result []Vertex
	for rows.Next() {
		var vertex Vertex
		var props string
		if err := rows.Scan(&vertex.ID, &vertex.Label, &props); err != nil {
			return nil, fmt.Errorf("match vertices: scan: %w", err)
		}
		if vertex.Props, err = unmarshalProps(props); err != nil {
			return nil, fmt.Errorf("match vertices: %w", err)
		}
		result = append(result, vertex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match vertices: %w", err)
	}
	return result, nil
}

// MatchEdges returns every edge that, bound to v, satisfies filter.
// A nil filter matches all edges.
//
// Results are ordered by id for deterministic output.
func (s *Store) MatchEdges(ctx context.Context, v ir.QueryVariable, filter queryir.Expr, binds ...any) ([]Edge, error) {
	if v.Type != ir.VarTypeEdge {
		return nil, fmt.Errorf("match edges: %s is not an edge variable", v)
	}
	rows, err := s.match(ctx, v, filter, binds)
	if err != nil {
		return nil, fmt.Errorf("match edges: %w", err)
	}
	defer rows.Close()

	var result []Edge
	for rows.Next() {
		var edge Edge
		var props string
		if err := rows.Scan(&edge.ID, &edge.Src, &edge.Dst, &edge.Label, &props); err != nil {
			return nil, fmt.Errorf("match edges: scan: %w", err)
		}
		if edge.Props, err = unmarshalProps(props); err != nil {
			return nil, fmt.Errorf("match edges: %w", err)
		}
		result = append(result, edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match edges: %w", err)
	}
	return result, nil
}

func (s *Store) match(ctx context.Context, v ir.QueryVariable, filter queryir.Expr, binds []any) (*sql.Rows, error) {
	query, params, err := querysql.NewSQLCompiler(binds...).CompileMatch(v, filter)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("running match",
		zap.String("variable", v.String()),
		zap.String("sql", query),
		zap.Int("params", len(params)),
	)
	return s.db.QueryContext(ctx, query, params...)
}
