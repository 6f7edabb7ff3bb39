package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Sea View Villa", "sea-view-villa"},
		{"accented characters", "Café de la Plage", "cafe-de-la-plage"},
		{"mixed case and symbols", "Über-Lodge (Zürich) #1!", "uber-lodge-zurich-1"},
		{"consecutive separators", "Twin   Peaks -- Lodge", "twin-peaks-lodge"},
		{"leading and trailing junk", "  --Hotel--  ", "hotel"},
		{"numbers kept", "Studio 54", "studio-54"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Sao Paulo", RemoveDiacritics("São Paulo"))
	assert.Equal(t, "creme brulee", RemoveDiacritics("crème brûlée"))
	assert.Equal(t, "plain ascii", RemoveDiacritics("plain ascii"))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 4.5, Round1(4.45))
	assert.Equal(t, 4.2, Round1(4.24))
	assert.Equal(t, 0.0, Round1(0))
	assert.Equal(t, 5.0, Round1(4.96))
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, id, ParseStringToUUID("  "+id.String()+"  "))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("not-a-uuid"))
}

func TestParseFloatToDecimal(t *testing.T) {
	assert.Nil(t, ParseFloatToDecimal(nil))

	v := 129.99
	d := ParseFloatToDecimal(&v)
	require.NotNil(t, d)
	assert.Equal(t, "129.99", d.String())
}

func TestJoinClauses(t *testing.T) {
	assert.Equal(t, "a AND b", JoinWithAnd([]string{"a", "b"}))
	assert.Equal(t, "a OR b OR c", JoinWithOr([]string{"a", "b", "c"}))
	assert.Equal(t, "only", JoinWithAnd([]string{"only"}))
	assert.Equal(t, "", JoinWithOr(nil))
}
