package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/ports"
)

// ActionFactoryContractTest is a reusable test suite that verifies if a catalog complies with ports.ActionFactory.
// samples maps each supported kind to a description the factory must accept.
func ActionFactoryContractTest(t *testing.T, factory ports.ActionFactory, samples map[string]domain.Description) {
	t.Helper()

	t.Run("NewAction_Success", func(t *testing.T) {
		for kind, desc := range samples {
			body, err := factory.NewAction(desc)
			if err != nil {
				t.Fatalf("unexpected error building %s: %v", kind, err)
			}
			if body.Kind() != kind {
				t.Errorf("kind mismatch: got %q, want %q", body.Kind(), kind)
			}
		}
	})

	t.Run("Describe_RoundTrip", func(t *testing.T) {
		for kind, desc := range samples {
			body, err := factory.NewAction(desc)
			if err != nil {
				t.Fatalf("unexpected error building %s: %v", kind, err)
			}
			out := body.Describe()
			if out.Kind() != domain.Kind(kind) {
				t.Errorf("described type for %s = %q", kind, out["type"])
			}

			again, err := factory.NewAction(out)
			if err != nil {
				t.Fatalf("rebuilding %s from its own description failed: %v", kind, err)
			}
			if again.Kind() != kind {
				t.Errorf("rebuilt kind mismatch: got %q, want %q", again.Kind(), kind)
			}
		}
	})

	t.Run("NewAction_Copies", func(t *testing.T) {
		for kind, desc := range samples {
			a, _ := factory.NewAction(desc)
			b, _ := factory.NewAction(desc)
			if a == b {
				t.Errorf("factory returned the same body twice for %s", kind)
			}
		}
	})

	t.Run("NewAction_MissingType", func(t *testing.T) {
		_, err := factory.NewAction(domain.Description{"text": "no type"})
		if err == nil {
			t.Error("expected error for description without type, got nil")
		}
		if !errors.Is(err, domain.ErrInvalidDescription) && !errors.Is(err, domain.ErrUnknownKind) {
			t.Errorf("unexpected error kind: %v", err)
		}
	})
}
