package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// ErrInvalidCursor is returned for a malformed entry listing cursor.
var ErrInvalidCursor = errors.New("invalid cursor")

// PostingUseCase is the posting engine. Every voucher it writes is a
// balanced debit/credit pair committed in a single transaction.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	voucherRepo VoucherRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	locker      Locker
	metrics     PostingMetrics
	logger      zerolog.Logger
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	voucherRepo VoucherRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		voucherRepo: voucherRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		metrics:     nopMetrics{},
		logger:      zerolog.Nop(),
	}
}

// WithRetrier retries postings that fail on transient storage errors.
func (uc *PostingUseCase) WithRetrier(retrier Retrier) *PostingUseCase {
	uc.retrier = retrier
	return uc
}

// WithLocker serializes postings that share an idempotency key.
func (uc *PostingUseCase) WithLocker(locker Locker) *PostingUseCase {
	uc.locker = locker
	return uc
}

// WithMetrics records posting outcomes.
func (uc *PostingUseCase) WithMetrics(m PostingMetrics) *PostingUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithLogger sets the logger.
func (uc *PostingUseCase) WithLogger(logger zerolog.Logger) *PostingUseCase {
	uc.logger = logger
	return uc
}

// PostInput represents a posting request. FromAccountID is debited and
// ToAccountID is credited.
type PostInput struct {
	FromAccountID  string
	ToAccountID    string
	Date           string
	Amount         decimal.Decimal
	Kind           string
	Remarks        string
	RefNo          string
	IdempotencyKey string
}

// Post validates input and writes one balanced voucher. With an idempotency
// key, a repeated identical posting returns the original voucher and a
// different posting under the same key is rejected.
func (uc *PostingUseCase) Post(ctx context.Context, input PostInput) (*domain.Voucher, error) {
	start := time.Now()

	voucher, replayed, err := uc.post(ctx, input)
	if err != nil {
		uc.metrics.PostingFailed(errorReason(err))
		uc.logger.Debug().Err(err).
			Str("from_account_id", input.FromAccountID).
			Str("to_account_id", input.ToAccountID).
			Msg("posting rejected")
		return nil, err
	}

	if replayed {
		uc.logger.Debug().
			Str("voucher_no", voucher.VoucherNo).
			Str("idempotency_key", input.IdempotencyKey).
			Msg("posting replayed")
		return voucher, nil
	}

	uc.metrics.VoucherPosted(voucher.Kind, voucher.Amount, time.Since(start))
	uc.logger.Info().
		Str("voucher_no", voucher.VoucherNo).
		Str("kind", string(voucher.Kind)).
		Str("amount", voucher.Amount.StringFixed(domain.AmountScale)).
		Msg("voucher posted")

	return voucher, nil
}

// post reports replayed when an idempotency key matched an existing
// voucher and nothing new was written.
func (uc *PostingUseCase) post(ctx context.Context, input PostInput) (*domain.Voucher, bool, error) {
	draft, err := draftFromInput(input)
	if err != nil {
		return nil, false, err
	}

	if draft.IdempotencyKey != "" && uc.locker != nil {
		release, err := uc.locker.Acquire(ctx, postingLockPrefix+draft.IdempotencyKey)
		if err != nil {
			return nil, false, &domain.PersistenceError{Op: "acquire posting lock", Err: err}
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn().Err(err).Str("idempotency_key", draft.IdempotencyKey).Msg("posting lock release failed")
			}
		}()
	}

	voucher, replayed, err := uc.writeWithRetry(ctx, draft)
	if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
		// A concurrent posting with the same key committed first; the
		// next attempt finds it and replays or rejects.
		voucher, replayed, err = uc.writeWithRetry(ctx, draft)
	}
	if err != nil {
		return nil, false, classify("post voucher", "", err)
	}

	return voucher, replayed, nil
}

func draftFromInput(input PostInput) (domain.VoucherDraft, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return domain.VoucherDraft{}, domain.NewValidationError("amount", err)
	}

	if input.FromAccountID == "" {
		return domain.VoucherDraft{}, domain.NewValidationError("from_account_id", domain.ErrInvalidIDFormat)
	}
	if input.ToAccountID == "" {
		return domain.VoucherDraft{}, domain.NewValidationError("to_account_id", domain.ErrInvalidIDFormat)
	}
	if input.FromAccountID == input.ToAccountID {
		return domain.VoucherDraft{}, domain.NewValidationError("to_account_id", domain.ErrSameAccount)
	}

	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return domain.VoucherDraft{}, domain.NewValidationError("date", err)
	}

	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return domain.VoucherDraft{}, domain.NewValidationError("kind", err)
	}

	if len(input.Remarks) > domain.MaxRemarksLength {
		return domain.VoucherDraft{}, domain.NewValidationError("remarks", errors.New("remarks too long"))
	}
	if len(input.RefNo) > domain.MaxRefNoLength {
		return domain.VoucherDraft{}, domain.NewValidationError("ref_no", errors.New("reference number too long"))
	}

	return domain.VoucherDraft{
		FromAccountID:  input.FromAccountID,
		ToAccountID:    input.ToAccountID,
		Date:           date,
		Amount:         input.Amount,
		Kind:           kind,
		Remarks:        strings.TrimSpace(input.Remarks),
		RefNo:          strings.TrimSpace(input.RefNo),
		IdempotencyKey: input.IdempotencyKey,
	}, nil
}

func (uc *PostingUseCase) writeWithRetry(ctx context.Context, draft domain.VoucherDraft) (*domain.Voucher, bool, error) {
	var voucher *domain.Voucher
	var replayed bool

	op := func() error {
		v, r, err := uc.write(ctx, draft)
		if err != nil {
			return err
		}
		voucher, replayed = v, r
		return nil
	}

	if uc.retrier == nil {
		err := op()
		return voucher, replayed, err
	}
	if err := uc.retrier.Retry(ctx, op); err != nil {
		return nil, false, err
	}
	return voucher, replayed, nil
}

func (uc *PostingUseCase) write(ctx context.Context, draft domain.VoucherDraft) (*domain.Voucher, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	if draft.IdempotencyKey != "" {
		existing, err := uc.voucherRepo.GetByIdempotencyKey(ctx, tx, draft.IdempotencyKey)
		switch {
		case err == nil:
			if existing.SamePosting(draft) {
				return existing, true, nil
			}
			return nil, false, domain.NewValidationError("idempotency_key", domain.ErrIdempotencyConflict)
		case !errors.Is(err, domain.ErrVoucherNotFound):
			return nil, false, err
		}
	}

	voucher, err := uc.persist(ctx, tx, draft)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}

	return voucher, false, nil
}

// persist resolves both accounts and writes the voucher and its entries
// inside tx.
func (uc *PostingUseCase) persist(ctx context.Context, tx Transaction, draft domain.VoucherDraft) (*domain.Voucher, error) {
	accountIDs := []string{draft.FromAccountID, draft.ToAccountID}
	sort.Strings(accountIDs)

	for _, id := range accountIDs {
		if _, err := uc.accountRepo.GetByIDTx(ctx, tx, id); err != nil {
			return nil, classify("resolve account", id, err)
		}
	}

	draft.VoucherNo = "V-" + uc.idGen.Generate()
	draft.DebitEntryID = uc.idGen.Generate()
	draft.CreditEntryID = uc.idGen.Generate()

	voucher, err := domain.NewVoucher(draft, time.Now().UTC())
	if err != nil {
		return nil, domain.NewValidationError("", err)
	}

	if err := uc.voucherRepo.Create(ctx, tx, voucher); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, voucher.Debit); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, voucher.Credit); err != nil {
		return nil, err
	}

	return voucher, nil
}

// ReverseInput represents input for reversing a voucher. Date defaults to
// the current UTC day.
type ReverseInput struct {
	VoucherNo string
	Date      string
	Remarks   string
}

// Reverse posts the mirror pair of an existing voucher. A voucher can be
// reversed once and reversal vouchers cannot themselves be reversed.
func (uc *PostingUseCase) Reverse(ctx context.Context, input ReverseInput) (*domain.Voucher, error) {
	start := time.Now()

	date := domain.Day(time.Now())
	if input.Date != "" {
		parsed, err := domain.ParseDate(input.Date)
		if err != nil {
			return nil, domain.NewValidationError("date", err)
		}
		date = parsed
	}

	op := func() (*domain.Voucher, error) {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		original, err := uc.voucherRepo.GetByNoTx(ctx, tx, input.VoucherNo)
		if err != nil {
			return nil, classify("get voucher", input.VoucherNo, err)
		}

		if original.Kind == domain.KindReversal {
			return nil, domain.NewValidationError("voucher_no", domain.ErrReverseReversal)
		}

		reversal, err := uc.persist(ctx, tx, original.ReversalDraft(date, strings.TrimSpace(input.Remarks)))
		if err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		return reversal, nil
	}

	var reversal *domain.Voucher
	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, func() error {
			v, opErr := op()
			reversal = v
			return opErr
		})
	} else {
		reversal, err = op()
	}
	if err != nil {
		err = classify("reverse voucher", input.VoucherNo, err)
		uc.metrics.PostingFailed(errorReason(err))
		return nil, err
	}

	uc.metrics.VoucherPosted(reversal.Kind, reversal.Amount, time.Since(start))
	uc.logger.Info().
		Str("voucher_no", reversal.VoucherNo).
		Str("reverses", input.VoucherNo).
		Msg("voucher reversed")

	return reversal, nil
}

// GetVoucher retrieves a voucher with both entries.
func (uc *PostingUseCase) GetVoucher(ctx context.Context, voucherNo string) (*domain.Voucher, error) {
	voucher, err := uc.voucherRepo.GetByNo(ctx, voucherNo)
	if err != nil {
		return nil, classify("get voucher", voucherNo, err)
	}
	return voucher, nil
}

// ListEntriesInput filters the entry listing.
type ListEntriesInput struct {
	Kind      string
	AccountID string
	Cursor    string
	Limit     int
}

// ListEntries returns one page of entries in insertion order, optionally
// restricted to one kind or one account.
func (uc *PostingUseCase) ListEntries(ctx context.Context, input ListEntriesInput) (*domain.Page[*domain.Entry], error) {
	filter := domain.EntryFilter{
		AccountID: input.AccountID,
		Limit:     domain.NormalizeLimit(input.Limit),
	}

	if input.Kind != "" {
		kind := domain.Kind(strings.ToLower(input.Kind))
		if kind != domain.KindReversal {
			parsed, err := domain.ParseKind(input.Kind)
			if err != nil {
				return nil, domain.NewValidationError("type", err)
			}
			kind = parsed
		}
		filter.Kind = kind
	}

	if input.Cursor != "" {
		seq, err := strconv.ParseInt(input.Cursor, 10, 64)
		if err != nil || seq < 0 {
			return nil, domain.NewValidationError("cursor", ErrInvalidCursor)
		}
		filter.AfterSeq = seq
	}

	limit := filter.Limit
	filter.Limit = limit + 1

	rows, err := uc.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, classify("list entries", "", err)
	}

	return pageOf(rows, limit, func(e *domain.Entry) string {
		return strconv.FormatInt(e.Seq, 10)
	}), nil
}

type nopMetrics struct{}

func (nopMetrics) VoucherPosted(domain.Kind, decimal.Decimal, time.Duration) {}
func (nopMetrics) PostingFailed(string)                                     {}
