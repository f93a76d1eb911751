package models

import (
	"time"

	"gorm.io/datatypes"
)

const ISODate = "2006-01-02"

func DateISO(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODate)
}

// ParseDate разбирает yyyy-MM-dd как календарную дату (UTC-полночь).
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func MustDate(s string) datatypes.Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
