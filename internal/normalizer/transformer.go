package normalizer

import (
	"strconv"
	"strings"
	"time"

	"dataclean/internal/models"
	"dataclean/pkg/utils"

	"github.com/shopspring/decimal"
)

// Recognized semantic columns.
const (
	ColumnNom        = "nom"
	ColumnAge        = "age"
	ColumnAmount     = "montant_total_eur"
	ColumnActif      = "actif"
	ColumnNewsletter = "newsletter_ok"
	ColumnSignupDate = "date_inscription"
	ColumnLastLogin  = "derniere_connexion"
)

const (
	dateOutputLayout     = "2006-01-02"
	dateTimeOutputLayout = "2006-01-02 15:04:05"

	minAge, maxAge = 0, 120
	minSignupYear  = 1900
	maxSignupYear  = 2030

	currencySymbol      = "€"
	amountDecimalPlaces = 2
)

var maxAmount = decimal.NewFromInt(10_000_000)

// Layouts are tried in order; the first successful parse wins.
var (
	signupDateLayouts = []string{"2/1/2006", "2006-1-2", "2-1-2006"}
	lastLoginLayouts  = []string{"2/1/2006 15:04", "2006-1-2T15:04", "2/1/2006 15:04:05"}
)

var (
	actifTrue       = tokenSet("oui", "yes", "1", "true", "vrai")
	actifFalse      = tokenSet("non", "no", "0", "false", "faux")
	newsletterTrue  = tokenSet("TRUE", "T", "YES", "OUI", "1")
	newsletterFalse = tokenSet("FALSE", "F", "NO", "NON", "0")
)

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}

	return set
}

// ParseAge keeps only digits and minus signs, then parses an integer in [0,120].
func ParseAge(raw string) (int, bool) {
	s := utils.KeepRunes(raw, func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '-'
	})
	if s == "" || s == "-" {
		return 0, false
	}

	age, err := strconv.Atoi(s)
	if err != nil || age < minAge || age > maxAge {
		return 0, false
	}

	return age, true
}

// ParseAmount parses a euro amount written with either "," or "." as decimal
// separator. When both appear, the one occurring first is the thousands
// separator. The result is rounded to two places and must lie in [0, 10,000,000].
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := utils.RemoveWhitespace(strings.ReplaceAll(raw, currencySymbol, ""))

	comma := strings.Index(s, ",")
	dot := strings.Index(s, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if dot < comma {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	if s == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if amount.IsNegative() || amount.GreaterThan(maxAmount) {
		return decimal.Zero, false
	}

	return amount.RoundBank(amountDecimalPlaces), true
}

// ParseActif matches a case-insensitive yes/no token.
func ParseActif(raw string) (bool, bool) {
	return matchToken(strings.ToLower(strings.TrimSpace(raw)), actifTrue, actifFalse)
}

// ParseNewsletter matches a yes/no token after removing all whitespace.
func ParseNewsletter(raw string) (bool, bool) {
	return matchToken(strings.ToUpper(utils.RemoveWhitespace(raw)), newsletterTrue, newsletterFalse)
}

func matchToken(token string, truthy, falsy map[string]struct{}) (bool, bool) {
	if _, ok := truthy[token]; ok {
		return true, true
	}

	if _, ok := falsy[token]; ok {
		return false, true
	}

	return false, false
}

// ParseSignupDate accepts DD/MM/YYYY, YYYY-MM-DD or DD-MM-YYYY with a year in [1900,2030].
func ParseSignupDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)

	for _, layout := range signupDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		if t.Year() >= minSignupYear && t.Year() <= maxSignupYear {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseLastLogin accepts DD/MM/YYYY HH:MM, YYYY-MM-DDTHH:MM or DD/MM/YYYY HH:MM:SS.
// Already normalized YYYY-MM-DD HH:MM:SS values are accepted last.
func ParseLastLogin(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)

	for _, layout := range lastLoginLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func formatBool(b bool) string {
	if b {
		return "True"
	}

	return "False"
}

// cleanerFunc turns a raw cell into its normalized text, or reports it absent.
type cleanerFunc func(raw string) (string, bool)

type columnCleaner struct {
	column string
	clean  cleanerFunc
}

// Transformer applies per-column cleaning rules to a table.
type Transformer struct {
	cleaners []columnCleaner
}

// NewTransformer creates a new transformer instance with the fixed cleaning rules.
func NewTransformer() *Transformer {
	return &Transformer{
		cleaners: []columnCleaner{
			{ColumnAge, func(raw string) (string, bool) {
				age, ok := ParseAge(raw)
				return strconv.Itoa(age), ok
			}},
			{ColumnAmount, func(raw string) (string, bool) {
				amount, ok := ParseAmount(raw)
				return amount.StringFixed(amountDecimalPlaces), ok
			}},
			{ColumnActif, func(raw string) (string, bool) {
				b, ok := ParseActif(raw)
				return formatBool(b), ok
			}},
			{ColumnNewsletter, func(raw string) (string, bool) {
				b, ok := ParseNewsletter(raw)
				return formatBool(b), ok
			}},
			{ColumnSignupDate, func(raw string) (string, bool) {
				t, ok := ParseSignupDate(raw)
				return t.Format(dateOutputLayout), ok
			}},
			{ColumnLastLogin, func(raw string) (string, bool) {
				t, ok := ParseLastLogin(raw)
				return t.Format(dateTimeOutputLayout), ok
			}},
		},
	}
}

// TrimFields strips leading and trailing whitespace from every present field.
func (t *Transformer) TrimFields(table *models.Table) {
	for _, rec := range table.Records {
		for col, f := range rec {
			if f.Valid {
				rec[col] = models.Present(strings.TrimSpace(f.Value))
			}
		}
	}
}

// Transform runs every cleaner whose column is present in the table.
// It returns, per column, how many present values were degraded to absent.
func (t *Transformer) Transform(table *models.Table) map[string]int {
	degraded := make(map[string]int)

	for _, c := range t.cleaners {
		if !table.HasColumn(c.column) {
			continue
		}

		for _, rec := range table.Records {
			f := rec[c.column]
			if !f.Valid {
				continue
			}

			if v, ok := c.clean(f.Value); ok {
				rec[c.column] = models.Present(v)
			} else {
				rec[c.column] = models.Absent()
				degraded[c.column]++
			}
		}
	}

	return degraded
}
