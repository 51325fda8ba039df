package vector

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kakeibo/pkg/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS vectors (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	amount REAL NOT NULL,
	category TEXT NOT NULL,
	description TEXT,
	embedding BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vectors_category ON vectors (category);
`

// sqliteIndex stores embeddings as little-endian float32 blobs in SQLite and
// scores candidates with in-process cosine similarity. Suitable for the
// record volumes of a personal ledger; the Index interface keeps it
// swappable for a dedicated ANN store.
type sqliteIndex struct {
	db  *sql.DB
	dim int
}

// NewSQLite opens a SQLite backed vector index with a fixed dimension
func NewSQLite(ctx context.Context, path string, dim int) (Index, error) {
	if dim <= 0 {
		return nil, goerr.New("vector dimension must be positive", goerr.V("dim", dim))
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(model.ErrIndexUnavailable, "failed to open database", goerr.V("path", path), goerr.V("cause", err.Error()))
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, goerr.Wrap(model.ErrIndexUnavailable, "failed to initialize schema", goerr.V("cause", err.Error()))
	}

	return &sqliteIndex{db: db, dim: dim}, nil
}

func (x *sqliteIndex) Upsert(ctx context.Context, p *Point) error {
	if len(p.Embedding) != x.dim {
		return goerr.New("embedding dimension mismatch",
			goerr.V("want", x.dim), goerr.V("got", len(p.Embedding)))
	}

	_, err := x.db.ExecContext(ctx,
		`INSERT INTO vectors (id, date, amount, category, description, embedding)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   date = excluded.date,
		   amount = excluded.amount,
		   category = excluded.category,
		   description = excluded.description,
		   embedding = excluded.embedding`,
		string(p.ID), p.Payload.Date, p.Payload.Amount, string(p.Payload.Category), p.Payload.Description,
		encodeVector(p.Embedding),
	)
	if err != nil {
		return goerr.Wrap(model.ErrIndexUnavailable, "failed to upsert point", goerr.V("id", p.ID), goerr.V("cause", err.Error()))
	}

	return nil
}

func (x *sqliteIndex) Search(ctx context.Context, embedding []float32, limit int, filter *Filter) ([]*Match, error) {
	if len(embedding) != x.dim {
		return nil, goerr.New("embedding dimension mismatch",
			goerr.V("want", x.dim), goerr.V("got", len(embedding)))
	}
	if limit <= 0 {
		limit = 10
	}

	query := "SELECT id, date, amount, category, description, embedding FROM vectors"
	var args []any
	if filter != nil && filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, string(filter.Category))
	}

	rows, err := x.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(model.ErrIndexUnavailable, "failed to query points", goerr.V("cause", err.Error()))
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var p Point
		var desc sql.NullString
		var blob []byte
		if err := rows.Scan(&p.ID, &p.Payload.Date, &p.Payload.Amount, &p.Payload.Category, &desc, &blob); err != nil {
			return nil, goerr.Wrap(model.ErrIndexUnavailable, "failed to scan point", goerr.V("cause", err.Error()))
		}
		p.Payload.Description = desc.String

		p.Embedding, err = decodeVector(blob, x.dim)
		if err != nil {
			return nil, goerr.Wrap(err, "broken embedding", goerr.V("id", p.ID))
		}

		matches = append(matches, &Match{
			Point: &p,
			Score: cosineSimilarity(embedding, p.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(model.ErrIndexUnavailable, "failed to iterate points", goerr.V("cause", err.Error()))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

func (x *sqliteIndex) Close() error {
	if err := x.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database")
	}
	return nil
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(b []byte, dim int) ([]float32, error) {
	if len(b) != 4*dim {
		return nil, goerr.New("unexpected embedding size", goerr.V("bytes", len(b)), goerr.V("dim", dim))
	}
	v := make([]float32, dim)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
