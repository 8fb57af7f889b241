package utils

import "time"

// ParseDate converte uma data no formato YYYY-MM-DD. Strings vazias retornam
// nil sem erro, indicando filtro de data ausente.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
