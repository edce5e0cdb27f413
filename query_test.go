package pggateway

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestConvertValue(t *testing.T) {
	t.Parallel()

	if got := convertValue(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	ts := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	if got := convertValue(ts); got != "2026-08-29T10:30:00Z" {
		t.Fatalf("expected RFC3339 time, got %v", got)
	}

	if got := convertValue(math.NaN()); got != "NaN" {
		t.Fatalf("expected \"NaN\", got %v", got)
	}
	if got := convertValue(math.Inf(1)); got != "Infinity" {
		t.Fatalf("expected \"Infinity\", got %v", got)
	}
	if got := convertValue(float32(1.5)); got != float64(1.5) {
		t.Fatalf("expected 1.5, got %v", got)
	}

	uuid := [16]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	if got := convertValue(uuid); got != "12345678-9abc-def0-1234-56789abcdef0" {
		t.Fatalf("unexpected uuid: %v", got)
	}

	if got := convertValue([]byte{0xde, 0xad}); got != "3q0=" {
		t.Fatalf("expected base64 bytea, got %v", got)
	}

	numeric := pgtype.Numeric{NaN: true, Valid: true}
	if got := convertValue(numeric); got != "NaN" {
		t.Fatalf("expected \"NaN\" for numeric NaN, got %v", got)
	}
	if got := convertValue(pgtype.Numeric{Valid: false}); got != nil {
		t.Fatalf("expected nil for invalid numeric, got %v", got)
	}

	nested := map[string]any{"when": ts, "tags": []any{ts}}
	converted := convertValue(nested).(map[string]any)
	if converted["when"] != "2026-08-29T10:30:00Z" {
		t.Fatalf("expected nested time conversion, got %v", converted["when"])
	}
	if converted["tags"].([]any)[0] != "2026-08-29T10:30:00Z" {
		t.Fatalf("expected nested slice conversion, got %v", converted["tags"])
	}

	if got := convertValue("plain"); got != "plain" {
		t.Fatalf("expected passthrough string, got %v", got)
	}
	if got := convertValue(int64(42)); got != int64(42) {
		t.Fatalf("expected passthrough int64, got %v", got)
	}
}

func TestConvertValue_TimeAndInterval(t *testing.T) {
	t.Parallel()

	if got := convertValue(pgtype.Time{Microseconds: 3_600_000_000, Valid: true}); got != "01:00:00" {
		t.Fatalf("expected \"01:00:00\", got %v", got)
	}
	withMicros := pgtype.Time{Microseconds: 45_296_000_500, Valid: true}
	if got := convertValue(withMicros); got != "12:34:56.000500" {
		t.Fatalf("expected \"12:34:56.000500\", got %v", got)
	}
	if got := convertValue(pgtype.Time{Valid: false}); got != nil {
		t.Fatalf("expected nil for invalid time, got %v", got)
	}

	if got := convertValue(pgtype.Interval{Days: 1, Valid: true}); got != "1 day(s)" {
		t.Fatalf("expected \"1 day(s)\", got %v", got)
	}
	mixed := pgtype.Interval{Months: 14, Days: 3, Microseconds: 5_400_000_000, Valid: true}
	if got := convertValue(mixed); got != "1 year(s) 2 mon(s) 3 day(s) 1h30m0s" {
		t.Fatalf("unexpected interval rendering: %v", got)
	}
	if got := convertValue(pgtype.Interval{Valid: true}); got != "0" {
		t.Fatalf("expected \"0\" for zero interval, got %v", got)
	}
	if got := convertValue(pgtype.Interval{Days: 1}); got != nil {
		t.Fatalf("expected nil for invalid interval, got %v", got)
	}
}

func TestConvertValue_Range(t *testing.T) {
	t.Parallel()

	r := pgtype.Range[any]{
		Lower:     int64(1),
		Upper:     int64(10),
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Exclusive,
		Valid:     true,
	}
	if got := convertValue(r); got != "[1,10)" {
		t.Fatalf("expected \"[1,10)\", got %v", got)
	}

	empty := pgtype.Range[any]{LowerType: pgtype.Empty, UpperType: pgtype.Empty, Valid: true}
	if got := convertValue(empty); got != "empty" {
		t.Fatalf("expected \"empty\", got %v", got)
	}

	unbounded := pgtype.Range[any]{
		Upper:     int64(5),
		LowerType: pgtype.Unbounded,
		UpperType: pgtype.Inclusive,
		Valid:     true,
	}
	if got := convertValue(unbounded); got != "(,5]" {
		t.Fatalf("expected \"(,5]\", got %v", got)
	}

	if got := convertValue(pgtype.Range[any]{}); got != nil {
		t.Fatalf("expected nil for invalid range, got %v", got)
	}
}

func TestConvertValue_Geometric(t *testing.T) {
	t.Parallel()

	point := pgtype.Point{P: pgtype.Vec2{X: 1.5, Y: 2}, Valid: true}
	if got := convertValue(point); got != "(1.5,2)" {
		t.Fatalf("unexpected point: %v", got)
	}

	line := pgtype.Line{A: 1, B: -1, C: 0, Valid: true}
	if got := convertValue(line); got != "{1,-1,0}" {
		t.Fatalf("unexpected line: %v", got)
	}

	lseg := pgtype.Lseg{P: [2]pgtype.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, Valid: true}
	if got := convertValue(lseg); got != "[(0,0),(1,1)]" {
		t.Fatalf("unexpected lseg: %v", got)
	}

	box := pgtype.Box{P: [2]pgtype.Vec2{{X: 2, Y: 2}, {X: 0, Y: 0}}, Valid: true}
	if got := convertValue(box); got != "(2,2),(0,0)" {
		t.Fatalf("unexpected box: %v", got)
	}

	openPath := pgtype.Path{P: []pgtype.Vec2{{X: 0, Y: 0}, {X: 1, Y: 2}}, Closed: false, Valid: true}
	if got := convertValue(openPath); got != "[(0,0),(1,2)]" {
		t.Fatalf("unexpected open path: %v", got)
	}
	closedPath := pgtype.Path{P: []pgtype.Vec2{{X: 0, Y: 0}, {X: 1, Y: 2}}, Closed: true, Valid: true}
	if got := convertValue(closedPath); got != "((0,0),(1,2))" {
		t.Fatalf("unexpected closed path: %v", got)
	}

	polygon := pgtype.Polygon{P: []pgtype.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, Valid: true}
	if got := convertValue(polygon); got != "((0,0),(1,0),(0,1))" {
		t.Fatalf("unexpected polygon: %v", got)
	}

	circle := pgtype.Circle{P: pgtype.Vec2{X: 1, Y: 2}, R: 3.5, Valid: true}
	if got := convertValue(circle); got != "<(1,2),3.5>" {
		t.Fatalf("unexpected circle: %v", got)
	}

	if got := convertValue(pgtype.Point{}); got != nil {
		t.Fatalf("expected nil for invalid point, got %v", got)
	}
}

func TestConvertValue_Bits(t *testing.T) {
	t.Parallel()

	bits := pgtype.Bits{Bytes: []byte{0b10110000}, Len: 4, Valid: true}
	if got := convertValue(bits); got != "1011" {
		t.Fatalf("expected \"1011\", got %v", got)
	}

	wide := pgtype.Bits{Bytes: []byte{0xFF, 0x80}, Len: 9, Valid: true}
	if got := convertValue(wide); got != "111111111" {
		t.Fatalf("expected nine set bits, got %v", got)
	}

	if got := convertValue(pgtype.Bits{}); got != nil {
		t.Fatalf("expected nil for invalid bits, got %v", got)
	}
}

func TestOversizedResult(t *testing.T) {
	t.Parallel()
	rows := []map[string]any{{"body": strings.Repeat("x", 100)}}

	if msg := oversizedResult(rows, 100000); msg != "" {
		t.Fatalf("expected no message for small result, got %q", msg)
	}
	msg := oversizedResult(rows, 10)
	if msg == "" {
		t.Fatal("expected message for oversized result")
	}
	if !strings.Contains(msg, "add limits") {
		t.Fatalf("expected guidance in message, got %q", msg)
	}
}

func TestTruncateForLog(t *testing.T) {
	t.Parallel()
	if got := truncateForLog("short", 200); got != "short" {
		t.Fatalf("expected passthrough, got %q", got)
	}

	long := strings.Repeat("a", 300)
	got := truncateForLog(long, 200)
	if !strings.HasSuffix(got, "...[truncated]") {
		t.Fatalf("expected truncation suffix, got %q", got)
	}
	if len(got) > 200+len("...[truncated]") {
		t.Fatalf("truncated string too long: %d", len(got))
	}

	// Never split a multibyte rune.
	multibyte := strings.Repeat("é", 150)
	got = truncateForLog(multibyte, 101)
	trimmed := strings.TrimSuffix(got, "...[truncated]")
	if !utf8ValidString(trimmed) {
		t.Fatalf("truncation split a rune: %q", trimmed)
	}
}

func utf8ValidString(s string) bool {
	for _, r := range s {
		if r == '�' {
			return false
		}
	}
	return true
}
