package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		verbose   bool
		wantDebug bool
		wantWarn  bool
	}{
		{verbose: false, wantDebug: false, wantWarn: true},
		{verbose: true, wantDebug: true, wantWarn: true},
	}
	for _, tc := range testCases {
		l, err := New(tc.verbose)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", tc.verbose, err)
		}
		if got := l.Core().Enabled(zapcore.DebugLevel); got != tc.wantDebug {
			t.Errorf("New(%v) debug enabled = %v, want %v", tc.verbose, got, tc.wantDebug)
		}
		if got := l.Core().Enabled(zapcore.WarnLevel); got != tc.wantWarn {
			t.Errorf("New(%v) warn enabled = %v, want %v", tc.verbose, got, tc.wantWarn)
		}
	}
}

func TestNamed_Nil(t *testing.T) {
	if Named(nil, "store") == nil {
		t.Errorf("Named(nil) returned nil, want a no-op logger")
	}
}
