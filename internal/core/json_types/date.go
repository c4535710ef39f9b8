package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date - календарная дата "YYYY-MM-DD" на границе HTTP.
// Сериализуется без времени и таймзоны.
type Date struct {
	Date time.Time
}

func (t *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %v", err)
	}

	parsedDate, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("failed to parse date %q: want YYYY-MM-DD", str)
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format("2006-01-02"))
}

func (t Date) String() string {
	return t.Date.Format("2006-01-02")
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}
