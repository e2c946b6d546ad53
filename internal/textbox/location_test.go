package textbox

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLocationOrdering(t *testing.T) {
	if !Loc(0, 9).Less(Loc(1, 0)) {
		t.Fatalf("(0,9) should sort before (1,0)")
	}
	if !Loc(2, 1).Less(Loc(2, 3)) {
		t.Fatalf("(2,1) should sort before (2,3)")
	}
	if Loc(2, 3).Compare(Loc(2, 3)) != 0 {
		t.Fatalf("equal locations should compare 0")
	}
	if !Loc(4, 4).LessEq(Loc(4, 4)) {
		t.Fatalf("LessEq should hold for equal locations")
	}
	if got := MinLocation(Loc(3, 0), Loc(1, 7)); got != Loc(1, 7) {
		t.Fatalf("min = %v, want (1,7)", got)
	}
	if got := MaxLocation(Loc(3, 0), Loc(1, 7)); got != Loc(3, 0) {
		t.Fatalf("max = %v, want (3,0)", got)
	}
}

func TestNPosSortsLast(t *testing.T) {
	if !Loc(1<<20, 1<<20).Less(NPos()) {
		t.Fatalf("npos should sort after any reachable location")
	}
	if !NPos().IsNPos() || Loc(0, 0).IsNPos() {
		t.Fatalf("IsNPos misreports")
	}
	if got := NPos().Add(Loc(0, 1)); !got.IsNPos() {
		t.Fatalf("npos + (0,1) = %v, want npos", got)
	}
	if got := Loc(2, 3).Add(Loc(0, 1)); got != Loc(2, 4) {
		t.Fatalf("(2,3) + (0,1) = %v, want (2,4)", got)
	}
}

func TestLocationString(t *testing.T) {
	if got := Loc(3, 14).String(); got != "(3,14)" {
		t.Fatalf("string = %q", got)
	}
	if got := NPos().String(); got != "(npos)" {
		t.Fatalf("npos string = %q", got)
	}
}

func TestLocationMarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	if err := Loc(1, 2).MarshalLogObject(enc); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if enc.Fields["row"] != 1 || enc.Fields["col"] != 2 {
		t.Fatalf("fields = %v", enc.Fields)
	}
}
