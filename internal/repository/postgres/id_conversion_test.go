package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bagdasarian/octofit-tracker/internal/domain"
)

func TestStringIDToInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "plain number", input: "1", want: 1},
		{name: "large number", input: "12345", want: 12345},
		{name: "surrounding spaces", input: " 7 ", want: 7},
		{name: "zero", input: "0", want: 0},
		{name: "non-numeric", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "object id", input: "65a1f0c2e4b0a1b2c3d4e5f6", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stringIDToInt(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntToStringID(t *testing.T) {
	assert.Equal(t, "42", intToStringID(42))

	id, err := stringIDToInt(intToStringID(9))
	assert.NoError(t, err)
	assert.Equal(t, 9, id)
}

func TestWithPage(t *testing.T) {
	query, args := withPage("SELECT 1", domain.Page{})
	assert.Equal(t, "SELECT 1", query)
	assert.Nil(t, args)

	query, args = withPage("SELECT 1", domain.Page{Limit: 10, Offset: 20})
	assert.Equal(t, "SELECT 1 LIMIT $1 OFFSET $2", query)
	assert.Equal(t, []any{10, 20}, args)
}
