package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"

	// DateLayout is the calendar-day format stamped on new records.
	DateLayout = "2006-01-02"
)

type (
	// Kind selects a record schema and its backing log.
	Kind string

	IncomeRecord struct {
		Date        string
		Description string
		Amount      decimal.Decimal
	}

	ExpenseRecord struct {
		Date        string
		Category    string
		Description string
		Amount      decimal.Decimal
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrUnknownKind      = errors.New("unknown record kind")
)

// Kinds returns every record kind in export order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense}
}

func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind has a schema.
func (k Kind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense:
		return true
	default:
		return false
	}
}

// FieldCount returns the number of fields a stored line of this kind holds.
func (k Kind) FieldCount() int {
	switch k {
	case KindIncome:
		return 3
	case KindExpense:
		return 4
	default:
		return 0
	}
}

// ParseKind maps user input ("income", "Expense", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

// FormatDate renders t as a calendar day in the record date format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthKey returns the first 7 characters of a record date (YYYY-MM).
// Shorter or malformed dates are returned as-is and form their own bucket.
func MonthKey(date string) string {
	return prefix(date, 7)
}

// YearKey returns the first 4 characters of a record date (YYYY).
func YearKey(date string) string {
	return prefix(date, 4)
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (r IncomeRecord) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Fields returns the record in stored field order: date, description, amount.
func (r IncomeRecord) Fields() []string {
	return []string{r.Date, r.Description, r.Amount.String()}
}

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Fields returns the record in stored field order: date, category, description, amount.
func (r ExpenseRecord) Fields() []string {
	return []string{r.Date, r.Category, r.Description, r.Amount.String()}
}

// DecodeIncome converts stored fields into an IncomeRecord.
// record is the 1-based record position used in error reports.
func DecodeIncome(fields []string, record int) (IncomeRecord, error) {
	if err := CheckArity(KindIncome, fields, 0); err != nil {
		return IncomeRecord{}, err
	}
	amount, err := ParseAmount(fields[2])
	if err != nil {
		return IncomeRecord{}, &RecordError{Kind: KindIncome, Record: record, Err: err}
	}
	return IncomeRecord{Date: fields[0], Description: fields[1], Amount: amount}, nil
}

// DecodeExpense converts stored fields into an ExpenseRecord.
func DecodeExpense(fields []string, record int) (ExpenseRecord, error) {
	if err := CheckArity(KindExpense, fields, 0); err != nil {
		return ExpenseRecord{}, err
	}
	amount, err := ParseAmount(fields[3])
	if err != nil {
		return ExpenseRecord{}, &RecordError{Kind: KindExpense, Record: record, Err: err}
	}
	return ExpenseRecord{Date: fields[0], Category: fields[1], Description: fields[2], Amount: amount}, nil
}
