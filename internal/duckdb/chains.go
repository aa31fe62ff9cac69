package duckdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-structure/internal/represent"
)

// ErrUnknownStructure is returned by Fetch for identifiers with no catalogued chains.
var ErrUnknownStructure = errors.New("unknown structure")

// WriteChains replaces the catalogued chain list of a structure.
func (s *Store) WriteChains(ctx context.Context, structureID string, chains []represent.Chain) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM structure_chains WHERE structure_id = ?`, structureID); err != nil {
		return fmt.Errorf("clear chains: %w", err)
	}
	for i, c := range chains {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO structure_chains (structure_id, ordinal, chain_id, description) VALUES (?, ?, ?, ?)`,
			structureID, i, c.ChainID, c.Description); err != nil {
			return fmt.Errorf("insert chain %s/%s: %w", structureID, c.ChainID, err)
		}
	}
	return tx.Commit()
}

// LookupChains returns the chains of a structure in catalog order.
func (s *Store) LookupChains(ctx context.Context, structureID string) ([]represent.Chain, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chain_id, description FROM structure_chains WHERE structure_id = ? ORDER BY ordinal`,
		structureID)
	if err != nil {
		return nil, fmt.Errorf("query chains: %w", err)
	}
	defer rows.Close()

	var chains []represent.Chain
	for rows.Next() {
		var (
			c    represent.Chain
			desc *string
		)
		if err := rows.Scan(&c.ChainID, &desc); err != nil {
			return nil, fmt.Errorf("scan chain: %w", err)
		}
		if desc != nil {
			c.Description = *desc
		}
		chains = append(chains, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chains: %w", err)
	}
	return chains, nil
}

// HasStructure reports whether the structure has at least one catalogued chain.
func (s *Store) HasStructure(ctx context.Context, structureID string) (bool, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM structure_chains WHERE structure_id = ?`, structureID).Scan(&n); err != nil {
		return false, fmt.Errorf("count chains: %w", err)
	}
	return n > 0, nil
}

// Fetch resolves a structure for loading. It fails with ErrUnknownStructure
// when the catalog has no chains for id.
func (s *Store) Fetch(ctx context.Context, id string) error {
	ok, err := s.HasStructure(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStructure, id)
	}
	return nil
}

// Structures returns all catalogued structure identifiers, sorted.
func (s *Store) Structures(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT structure_id FROM structure_chains ORDER BY structure_id`)
	if err != nil {
		return nil, fmt.Errorf("query structures: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan structure: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ImportChains reads a tab-separated chain catalog and writes it to the
// store. Columns are structure_id, chain_id and an optional description.
// Blank lines and lines starting with '#' are skipped. Rows of a structure
// keep their file order. Returns the number of structures written.
func (s *Store) ImportChains(ctx context.Context, r io.Reader) (int, error) {
	var (
		order   []string
		byID    = make(map[string][]represent.Chain)
		scanner = bufio.NewScanner(r)
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			return 0, fmt.Errorf("line %d: expected structure_id<TAB>chain_id", lineNum)
		}
		c := represent.Chain{ChainID: fields[1]}
		if len(fields) > 2 {
			c.Description = fields[2]
		}
		if _, ok := byID[fields[0]]; !ok {
			order = append(order, fields[0])
		}
		byID[fields[0]] = append(byID[fields[0]], c)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read chain catalog: %w", err)
	}

	for _, id := range order {
		if err := s.WriteChains(ctx, id, byID[id]); err != nil {
			return 0, err
		}
	}
	return len(order), nil
}
