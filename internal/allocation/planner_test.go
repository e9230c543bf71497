package allocation

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// seat builds a free seat for planner inputs.  Tests use the seat number
// as the ID so expectations read naturally.
func seat(row string, num uint32) model.Seat {
	return model.Seat{ID: uint64(num), RowLabel: row, SeatNumber: num}
}

// coach builds two rows: A holding seats 1-4 and B holding seats 5-8.
func coach() []model.Seat {
	return []model.Seat{
		seat("A", 1), seat("A", 2), seat("A", 3), seat("A", 4),
		seat("B", 5), seat("B", 6), seat("B", 7), seat("B", 8),
	}
}

func plannedNumbers(t *testing.T, free []model.Seat, count int) []uint32 {
	t.Helper()
	planned, err := Plan(free, count)
	if err != nil {
		t.Fatalf("Plan(%d) returned error: %v", count, err)
	}
	if len(planned) != count {
		t.Fatalf("Plan(%d) returned %d seats: %v", count, len(planned), planned)
	}
	nums := make([]uint32, len(planned))
	for i, s := range planned {
		nums[i] = s.SeatNumber
	}
	return nums
}

func TestPlanRowExactFit(t *testing.T) {
	got := plannedNumbers(t, coach(), 3)
	want := []uint32{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanPrefersFirstQualifyingRowByLabel(t *testing.T) {
	// Row A cannot hold the party but row B can; the plan must come
	// entirely from row B, lowest seat numbers first.
	free := []model.Seat{
		seat("A", 4),
		seat("B", 5), seat("B", 6), seat("B", 7), seat("B", 8),
	}
	got := plannedNumbers(t, free, 3)
	want := []uint32{5, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanWholeRowWhenExactCapacity(t *testing.T) {
	got := plannedNumbers(t, coach(), 4)
	want := []uint32{1, 2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanCrossRowAdjacency(t *testing.T) {
	// No row holds 3 seats.  The scan over global seat numbers pairs
	// (4,5) and fills with 6.
	free := []model.Seat{
		seat("A", 4),
		seat("B", 5), seat("B", 6),
	}
	got := plannedNumbers(t, free, 3)
	want := []uint32{4, 5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanAdjacencyBeforeFill(t *testing.T) {
	// Rows of two keep every row below the requested count.  Adjacent
	// pairs (3,4) and (9,10) must be pooled before any arbitrary fill;
	// the pool is trimmed to the requested count.
	free := []model.Seat{
		seat("A", 1), seat("A", 3),
		seat("B", 4), seat("B", 6),
		seat("C", 9), seat("C", 10),
	}
	got := plannedNumbers(t, free, 3)
	want := []uint32{3, 4, 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanFillWhenNoAdjacency(t *testing.T) {
	// No adjacent numbers anywhere: the plan degrades to ascending fill.
	free := []model.Seat{
		seat("A", 1), seat("A", 5),
		seat("B", 9), seat("B", 13),
	}
	got := plannedNumbers(t, free, 3)
	want := []uint32{1, 5, 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanSeatJoinsOnlyOnePair(t *testing.T) {
	// Consecutive run 4,5,6 with rows too small for a row fit: 5 must not
	// be reused as the left half of a second pair.
	free := []model.Seat{
		seat("A", 4), seat("A", 5),
		seat("B", 6), seat("B", 20),
	}
	got := plannedNumbers(t, free, 4)
	want := []uint32{4, 5, 6, 20}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanInsufficientInventory(t *testing.T) {
	free := []model.Seat{seat("A", 1), seat("A", 2)}
	if _, err := Plan(free, 3); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("want ErrInsufficientInventory, got %v", err)
	}
	if _, err := Plan(nil, 1); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("empty pool: want ErrInsufficientInventory, got %v", err)
	}
}

func TestPlanDeterministicUnderInputOrder(t *testing.T) {
	// The same snapshot in any order must produce the identical plan.
	base := []model.Seat{
		seat("A", 4),
		seat("B", 5), seat("B", 6),
		seat("C", 11), seat("C", 12),
	}
	want, err := Plan(base, 4)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]model.Seat(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := Plan(shuffled, 4)
		if err != nil {
			t.Fatalf("Plan returned error: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("plan differs for shuffled input: got %v, want %v", got, want)
		}
	}
}

func TestPlanDoesNotMutateSnapshot(t *testing.T) {
	free := []model.Seat{
		seat("B", 5), seat("A", 4), seat("B", 6),
	}
	orig := append([]model.Seat(nil), free...)
	if _, err := Plan(free, 2); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if !reflect.DeepEqual(free, orig) {
		t.Fatalf("Plan mutated its input: %v", free)
	}
}
