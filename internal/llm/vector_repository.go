package llm

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// VectorRepository stores recipe embeddings in SQLite and answers
// cosine-similarity queries over them.
type VectorRepository struct {
	db *sql.DB
}

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(d *sql.DB) *VectorRepository {
	return &VectorRepository{db: d}
}

// Save inserts or replaces the embedding for a recipe.
func (r *VectorRepository) Save(ctx context.Context, recipeID string, embedding []float32) error {
	blob, err := float32SliceToByteSlice(embedding)
	if err != nil {
		return fmt.Errorf("failed to convert float32 slice to byte slice: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO embeddings (recipe_id, embedding) VALUES (?, ?)`,
		recipeID, blob)
	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}
	return nil
}

// Get retrieves the embedding for a recipe, or nil if none is stored.
func (r *VectorRepository) Get(ctx context.Context, recipeID string) ([]float32, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT embedding FROM embeddings WHERE recipe_id = ?`, recipeID).Scan(&blob)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get embedding by recipe ID: %w", err)
	}
	return byteSliceToFloat32Slice(blob)
}

// FindSimilar returns the IDs of the recipes whose embeddings are most
// similar to the query, best first. It loads all embeddings and ranks
// them in memory; the stored corpus is small.
func (r *VectorRepository) FindSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT recipe_id, embedding FROM embeddings`)
	if err != nil {
		return nil, fmt.Errorf("failed to list embeddings: %w", err)
	}
	defer rows.Close()

	type scoredRecipe struct {
		RecipeID string
		Score    float64
	}

	var scored []scoredRecipe
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan embedding row: %w", err)
		}

		embed, err := byteSliceToFloat32Slice(blob)
		if err != nil {
			fmt.Printf("Warning: failed to decode embedding for recipe %s: %v\n", id, err)
			continue
		}

		scored = append(scored, scoredRecipe{RecipeID: id, Score: cosineSimilarity(queryEmbedding, embed)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate embeddings: %w", err)
	}

	slices.SortFunc(scored, func(a, b scoredRecipe) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if limit > len(scored) {
		limit = len(scored)
	}

	result := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		result = append(result, scored[i].RecipeID)
	}
	return result, nil
}

// float32SliceToByteSlice converts a slice of float32 to a byte slice.
func float32SliceToByteSlice(floats []float32) ([]byte, error) {
	if len(floats) == 0 {
		return nil, nil
	}
	buf := make([]byte, 4*len(floats))
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(f))
	}
	return buf, nil
}

// byteSliceToFloat32Slice converts a byte slice to a slice of float32.
func byteSliceToFloat32Slice(bytes []byte) ([]float32, error) {
	if len(bytes) == 0 {
		return nil, nil
	}
	if len(bytes)%4 != 0 {
		return nil, fmt.Errorf("byte slice length is not a multiple of 4")
	}
	floats := make([]float32, len(bytes)/4)
	for i := 0; i < len(bytes)/4; i++ {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(bytes[i*4 : (i+1)*4]))
	}
	return floats, nil
}

// cosineSimilarity calculates the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
