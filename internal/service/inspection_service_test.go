package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func TestClampPaging(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", limit: 0, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "negative limit", limit: -5, offset: 0, wantLimit: 50, wantOffset: 0},
		{name: "over maximum", limit: 500, offset: 0, wantLimit: 100, wantOffset: 0},
		{name: "negative offset", limit: 20, offset: -1, wantLimit: 20, wantOffset: 0},
		{name: "passthrough", limit: 25, offset: 75, wantLimit: 25, wantOffset: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPaging(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("clampPaging(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestLookupError(t *testing.T) {
	id := uuid.New()

	err := lookupError(gorm.ErrRecordNotFound, "inspection", id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing record error = %v, want ErrNotFound", err)
	}

	dbErr := errors.New("connection refused")
	err = lookupError(dbErr, "inspection", id)
	if errors.Is(err, ErrNotFound) {
		t.Errorf("database failure mapped to ErrNotFound: %v", err)
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("database failure not preserved in chain: %v", err)
	}
}

func TestCleanupRejectsNonPositiveDays(t *testing.T) {
	// Validation fails before the repository is touched, so a nil
	// repository is safe here.
	svc := NewInspectionService(nil, nil, zerolog.Nop())

	for _, days := range []int{0, -7} {
		if _, err := svc.Cleanup(context.Background(), days); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Cleanup(%d) error = %v, want ErrInvalidInput", days, err)
		}
	}
}
