package record

import "testing"

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawRecord
		wantName   string
		wantHeight *float64
		wantWeight *float64
	}{
		{
			name:       "all fields present",
			raw:        RawRecord{"name": "alice", "height": "65.5", "weight": "150"},
			wantName:   "alice",
			wantHeight: Float(65.5),
			wantWeight: Float(150),
		},
		{
			name:       "missing weight",
			raw:        RawRecord{"name": "bob", "height": "70"},
			wantName:   "bob",
			wantHeight: Float(70),
			wantWeight: nil,
		},
		{
			name:       "non-numeric height coerces to absent",
			raw:        RawRecord{"name": "carol", "height": "tall", "weight": "120"},
			wantName:   "carol",
			wantHeight: nil,
			wantWeight: Float(120),
		},
		{
			name:       "empty value is absent",
			raw:        RawRecord{"name": "dave", "height": "", "weight": "180"},
			wantName:   "dave",
			wantHeight: nil,
			wantWeight: Float(180),
		},
		{
			name:       "empty record",
			raw:        RawRecord{},
			wantName:   "",
			wantHeight: nil,
			wantWeight: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FromRaw(tt.raw)
			if row.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", row.Name, tt.wantName)
			}
			checkFloat(t, "Height", row.Height, tt.wantHeight)
			checkFloat(t, "Weight", row.Weight, tt.wantWeight)
		})
	}
}

func TestFromRawAll(t *testing.T) {
	raws := []RawRecord{
		{"name": "alice", "height": "65", "weight": "150"},
		{"name": "bob"},
	}

	rows := FromRawAll(raws)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "alice" || rows[1].Name != "bob" {
		t.Errorf("row order not preserved: got %q, %q", rows[0].Name, rows[1].Name)
	}
	if rows[1].Height != nil {
		t.Errorf("missing height should be nil, got %v", *rows[1].Height)
	}
}

func checkFloat(t *testing.T, field string, got, want *float64) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Errorf("%s = %v, want %v", field, got, want)
		return
	}
	if got != nil && *got != *want {
		t.Errorf("%s = %v, want %v", field, *got, *want)
	}
}
