package app_test

import (
	"testing"

	"internportal/internal/adapter/fallback"
	"internportal/internal/app"
)

func TestResolverPortals(t *testing.T) {
	remote := &mockPortal{}
	fixed := fallback.New()

	tests := []struct {
		mode         app.Mode
		wantPrimary  any
		wantFallback any
	}{
		{app.ModeAuto, remote, fixed},
		{app.ModeRemote, remote, nil},
		{app.ModeFallback, fixed, nil},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			r, err := app.NewResolver(tc.mode, remote, fixed)
			if err != nil {
				t.Fatalf("NewResolver: %v", err)
			}
			primary, fb := r.Portals()
			if primary != tc.wantPrimary {
				t.Errorf("unexpected primary %T", primary)
			}
			if tc.wantFallback == nil {
				if fb != nil {
					t.Errorf("expected no fallback, got %T", fb)
				}
			} else if fb != tc.wantFallback {
				t.Errorf("unexpected fallback %T", fb)
			}
			if r.Mode() != tc.mode {
				t.Errorf("expected mode %q, got %q", tc.mode, r.Mode())
			}
		})
	}
}

func TestResolverValidation(t *testing.T) {
	fixed := fallback.New()
	if _, err := app.NewResolver(app.ModeAuto, nil, fixed); err == nil {
		t.Error("auto without remote: expected error")
	}
	if _, err := app.NewResolver(app.ModeRemote, nil, fixed); err == nil {
		t.Error("remote without remote: expected error")
	}
	if _, err := app.NewResolver(app.ModeFallback, &mockPortal{}, nil); err == nil {
		t.Error("fallback without fixed: expected error")
	}
	if _, err := app.NewResolver(app.Mode("offline"), &mockPortal{}, fixed); err == nil {
		t.Error("unknown mode: expected error")
	}
}
