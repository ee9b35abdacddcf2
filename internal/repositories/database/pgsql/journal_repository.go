package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizbooks/backoffice_ledger/internal/apperrors"
	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
	portsrepo "github.com/bizbooks/backoffice_ledger/internal/core/ports/repositories"
	"github.com/bizbooks/backoffice_ledger/internal/models"
	"github.com/bizbooks/backoffice_ledger/internal/utils/mapping"
	"github.com/bizbooks/backoffice_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// SaveEntry persists an entry header and its line items atomically, owning
// its own database transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // rollback after commit is a no-op

	if err := r.SaveEntryInTx(ctx, tx, entry, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveEntryInTx persists an entry header and its line items inside an already
// open transaction owned by the caller. Callers have already validated that
// the lines balance.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (journal_entry_id, entry_date, reference_number, description, is_posted, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.JournalEntryID,
		modelEntry.EntryDate,
		modelEntry.ReferenceNumber,
		modelEntry.Description,
		modelEntry.IsPosted,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.JournalEntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_line_items (line_item_id, journal_entry_id, account_id, description, debit, credit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineItemID,
			modelEntry.JournalEntryID,
			modelLine.AccountID,
			modelLine.Description,
			modelLine.Debit,
			modelLine.Credit,
			modelEntry.CreatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to insert line item %d for entry %s: %w", i, modelEntry.JournalEntryID, err)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close line item batch for entry %s: %w", modelEntry.JournalEntryID, err)
	}

	return batchErr
}

// FindEntryByID retrieves a journal entry header. Lines are loaded separately
// via FindLinesByEntryID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT journal_entry_id, entry_date, reference_number, description, is_posted, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries
		WHERE journal_entry_id = $1;
	`

	var m models.JournalEntry
	err := r.Pool.QueryRow(ctx, query, journalEntryID).Scan(
		&m.JournalEntryID,
		&m.EntryDate,
		&m.ReferenceNumber,
		&m.Description,
		&m.IsPosted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves all line items belonging to a journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_item_id, journal_entry_id, account_id, description, debit, credit, created_at
		FROM journal_line_items
		WHERE journal_entry_id = $1
		ORDER BY line_item_id;
	`

	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for entry %s: %w", journalEntryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		err := rows.Scan(
			&m.LineItemID,
			&m.JournalEntryID,
			&m.AccountID,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row for entry %s: %w", journalEntryID, err)
		}
		modelLines = append(modelLines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows for entry %s: %w", journalEntryID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

const ledgerLineColumns = `
	SELECT l.journal_entry_id, e.entry_date, e.reference_number, l.description, l.debit, l.credit
	FROM journal_line_items l
	JOIN journal_entries e ON l.journal_entry_id = e.journal_entry_id
`

// LedgerLinesByAccount retrieves posted line items for an account within a
// date range. Ordering is stable: entry date, then entry id as tie-breaker.
func (r *PgxJournalRepository) LedgerLinesByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	query := ledgerLineColumns + `
		WHERE l.account_id = $1 AND e.is_posted = TRUE AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date, e.journal_entry_id;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return scanLedgerLines(rows, accountID)
}

// LedgerLinesByAccountPaged retrieves a token-paginated window of posted line
// items for an account, newest first. It returns the lines, a token for the
// next page (nil on the last page), and an error.
func (r *PgxJournalRepository) LedgerLinesByAccountPaged(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.journal_entry_id, e.entry_date, e.reference_number, l.description, l.debit, l.credit, e.created_at
		FROM journal_line_items l
		JOIN journal_entries e ON l.journal_entry_id = e.journal_entry_id
		WHERE l.account_id = $1 AND e.is_posted = TRUE`
	// Stable ordering: entry_date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY e.entry_date DESC, e.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (e.entry_date, e.created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query paged ledger lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type pagedLine struct {
		line      domain.LedgerLine
		createdAt time.Time
	}

	fetched := make([]pagedLine, 0, fetchLimit)
	for rows.Next() {
		var p pagedLine
		err := rows.Scan(
			&p.line.JournalEntryID,
			&p.line.EntryDate,
			&p.line.ReferenceNumber,
			&p.line.Description,
			&p.line.Debit,
			&p.line.Credit,
			&p.createdAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan paged ledger line for account %s: %w", accountID, err)
		}
		fetched = append(fetched, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating paged ledger lines for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	var out []domain.LedgerLine
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeToken(last.line.EntryDate, last.createdAt)
		nextTokenVal = &token
		out = make([]domain.LedgerLine, limit)
		for i := 0; i < limit; i++ {
			out[i] = fetched[i].line
		}
	} else {
		out = make([]domain.LedgerLine, len(fetched))
		for i, p := range fetched {
			out[i] = p.line
		}
	}

	return out, nextTokenVal, nil
}

// AccountActivity returns the total posted debit and credit sums for an
// account up to and including asOf.
func (r *PgxJournalRepository) AccountActivity(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_line_items l
		JOIN journal_entries e ON l.journal_entry_id = e.journal_entry_id
		WHERE l.account_id = $1 AND e.is_posted = TRUE AND e.entry_date <= $2;
	`

	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum account activity for %s: %w", accountID, err)
	}

	return debit, credit, nil
}

func scanLedgerLines(rows pgx.Rows, accountID string) ([]domain.LedgerLine, error) {
	lines := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		err := rows.Scan(
			&l.JournalEntryID,
			&l.EntryDate,
			&l.ReferenceNumber,
			&l.Description,
			&l.Debit,
			&l.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line for account %s: %w", accountID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines for account %s: %w", accountID, err)
	}

	return lines, nil
}
