package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseMoney tolera símbolos de moneda, espacios y separadores de miles en formato US ("1,234.56")
// o europeo ("1.234,56"). Un separador seguido de 3 dígitos es de miles; con 1 o 2 dígitos es decimal.
func parseMoney(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	neg := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			return r
		case r == '-':
			neg = true
		}
		return -1
	}, s)
	if strings.Trim(s, ".,") == "" {
		return decimal.NullDecimal{}, fmt.Errorf("not a number")
	}
	if neg {
		return decimal.NullDecimal{}, fmt.Errorf("negative amount")
	}
	plain, err := normalizeAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

var errAmbiguousAmount = errors.New("ambiguous decimal separator")

// normalizeAmount reescribe dígitos y separadores como "1234.56".
func normalizeAmount(s string) (string, error) {
	last := strings.LastIndexAny(s, ".,")
	if last < 0 {
		return s, nil
	}
	sep := s[last]
	group := byte(',')
	if sep == ',' {
		group = '.'
	}
	whole, frac := s[:last], s[last+1:]
	if whole == "" {
		whole = "0"
	}

	if strings.Count(s, ".")+strings.Count(s, ",") == 1 {
		switch {
		case frac == "":
			return "", errAmbiguousAmount
		case len(frac) == 3 && groupedDigits(s, sep):
			return whole + frac, nil
		}
		return whole + "." + frac, nil
	}

	switch len(frac) {
	case 1, 2:
		if strings.IndexByte(whole, sep) >= 0 || !groupedDigits(whole, group) {
			return "", errAmbiguousAmount
		}
		return strings.ReplaceAll(whole, string(group), "") + "." + frac, nil
	case 3:
		if strings.IndexByte(s, group) >= 0 || !groupedDigits(s, sep) {
			return "", errAmbiguousAmount
		}
		return strings.ReplaceAll(s, string(sep), ""), nil
	}
	return "", errAmbiguousAmount
}

// groupedDigits valida grupos de miles: el primero de 1 a 3 dígitos sin cero inicial, el resto de 3.
func groupedDigits(s string, sep byte) bool {
	parts := strings.Split(s, string(sep))
	if len(parts) == 1 {
		return true
	}
	if n := len(parts[0]); n == 0 || n > 3 || parts[0][0] == '0' {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

// parseExclusivity yes/no/true/false/1/0/exclusive/non-exclusive; vacío = false.
func parseExclusivity(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "no", "n", "false", "0", "non-exclusive", "nonexclusive", "non exclusive":
		return false, nil
	case "yes", "y", "true", "1", "exclusive":
		return true, nil
	}
	return false, fmt.Errorf("unrecognized value")
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"1/2/06 15:04",
	"01-02-06",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// excelEpoch día 0 del sistema de fechas 1900 de Excel (compensa el 29/02/1900 inexistente).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// parseDate ISO, US MM/DD/YYYY, DD-Mon-YYYY o número de serie de Excel.
func parseDate(raw string) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 && f < 2958466 {
		days := math.Floor(f)
		t := excelEpoch.AddDate(0, 0, int(days))
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized date")
}
