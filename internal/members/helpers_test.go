package members

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func str(s string) *string { return &s }

func num(n int) *int { return &n }

var memberColumnNames = []string{
	"id", "city", "state", "zip", "gender", "gender_ident", "orientation", "age",
	"ethnicity", "religion", "height", "have_kids", "occupation", "education", "hobbies",
	"about_you", "personality", "age_range_min", "age_range_max", "created_at",
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memberRow adds a member with the attributes the tests care about; everything else is NULL
func memberRow(rows *sqlmock.Rows, id int64, gender, orientation, age string, created time.Time) *sqlmock.Rows {
	return rows.AddRow(id, "Austin", "TX", nil, gender, nil, orientation, age,
		nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, created)
}
