package channels

import "testing"

func TestValidateCapacity(t *testing.T) {
	if err := validateCapacity(0); err != nil {
		t.Fatalf("validateCapacity(0) = %v, want nil", err)
	}
	if err := validateCapacity(5); err != nil {
		t.Fatalf("validateCapacity(5) = %v, want nil", err)
	}
	if err := validateCapacity(-1); err == nil {
		t.Fatal("validateCapacity(-1) should return an error")
	}
}

func TestNewChannel_NegativeCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewChannel with negative capacity should panic")
		}
	}()
	NewChannel[int](-1)
}

func TestChannelOption_NilOptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewChannel with a nil option should panic")
		}
	}()
	NewChannel[int](0, nil)
}

func TestWithChannelMetrics_NilProviderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("WithChannelMetrics(nil) should panic")
		}
	}()
	WithChannelMetrics(nil)
}
