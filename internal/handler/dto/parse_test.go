package dto

import (
	"encoding/json"
	"testing"

	"github.com/stpnv0/EventMarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProposalItems(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.ProposalItem
		wantErr bool
	}{
		{
			name: "array with numeric price",
			raw:  `[{"name":"Catering","price":100.5,"quantity":2}]`,
			want: []domain.ProposalItem{{Name: "Catering", Price: 100.5, Quantity: 2}},
		},
		{
			name: "string-encoded array with string price",
			raw:  `"[{\"name\":\"DJ\",\"price\":\"350.00\"}]"`,
			want: []domain.ProposalItem{{Name: "DJ", Price: 350, Quantity: 1}},
		},
		{name: "absent", raw: ``, want: []domain.ProposalItem{}},
		{name: "null", raw: `null`, want: []domain.ProposalItem{}},
		{name: "non-numeric price", raw: `[{"name":"DJ","price":"cheap"}]`, wantErr: true},
		{name: "object instead of array", raw: `{"name":"DJ"}`, wantErr: true},
		{name: "string with garbage", raw: `"not json"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProposalItems(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrice_Unmarshal(t *testing.T) {
	var body struct {
		Price *Price `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price":"12.30"}`), &body))
	assert.InDelta(t, 12.30, *body.Price.Float(), 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"price":7}`), &body))
	assert.InDelta(t, 7.0, *body.Price.Float(), 1e-9)

	err := json.Unmarshal([]byte(`{"price":"NaN"}`), &body)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTime(t *testing.T) {
	for _, v := range []string{"2026-05-01T10:00:00Z", "2026-05-01T10:00:00", "2026-05-01T10:00", "2026-05-01"} {
		_, err := ParseTime("eventDate", v)
		assert.NoError(t, err, v)
	}

	_, err := ParseTime("eventDate", "01/05/2026")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
