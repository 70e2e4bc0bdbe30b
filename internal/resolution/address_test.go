package resolution

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func idPtr(id int64) *int64   { return &id }

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		title     *string
		id        *int64
		wantMode  Mode
		wantTitle string
		wantID    int64
		wantErr   bool
	}{
		{name: "title only", title: strPtr("Buy milk"), wantMode: ByTitle, wantTitle: "Buy milk"},
		{name: "id only", id: idPtr(7), wantMode: ByID, wantID: 7},
		{name: "title wins over id", title: strPtr("Buy milk"), id: idPtr(7), wantMode: ByTitle, wantTitle: "Buy milk"},
		{name: "empty title still addresses by title", title: strPtr(""), id: idPtr(3), wantMode: ByTitle},
		{name: "neither supplied", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := Resolve(tt.title, tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidRequest) {
					t.Errorf("expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if addr.Mode != tt.wantMode {
				t.Errorf("mode: got %v, want %v", addr.Mode, tt.wantMode)
			}
			if addr.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", addr.Title, tt.wantTitle)
			}
			if addr.ID != tt.wantID {
				t.Errorf("id: got %d, want %d", addr.ID, tt.wantID)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ByTitle.String() != "BY_TITLE" || ByID.String() != "BY_ID" {
		t.Errorf("unexpected mode names: %s, %s", ByTitle, ByID)
	}
}
