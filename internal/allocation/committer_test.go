package allocation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// scriptStore is a Store double whose claim results are scripted per
// call.  It records every call so tests can assert the committer's
// compensation behaviour.
type scriptStore struct {
	snapshots  [][]model.Seat
	claims     [][]uint64 // successive ClaimIfFree return values
	claimErr   error
	releaseErr error

	snapshotCalls int
	claimCalls    [][]uint64 // arguments of each ClaimIfFree call
	released      [][]uint64 // arguments of each Release call
}

func (s *scriptStore) SnapshotFree(ctx context.Context) ([]model.Seat, error) {
	idx := s.snapshotCalls
	s.snapshotCalls++
	if idx >= len(s.snapshots) {
		idx = len(s.snapshots) - 1
	}
	return s.snapshots[idx], nil
}

func (s *scriptStore) ClaimIfFree(ctx context.Context, seatIDs []uint64, ownerID uint64) ([]uint64, error) {
	s.claimCalls = append(s.claimCalls, seatIDs)
	if s.claimErr != nil {
		return nil, s.claimErr
	}
	idx := len(s.claimCalls) - 1
	if idx >= len(s.claims) {
		idx = len(s.claims) - 1
	}
	return s.claims[idx], nil
}

func (s *scriptStore) Release(ctx context.Context, seatIDs []uint64, ownerID uint64) error {
	s.released = append(s.released, seatIDs)
	return s.releaseErr
}

func TestCommitAllClaimed(t *testing.T) {
	planned := []model.Seat{seat("A", 1), seat("A", 2)}
	st := &scriptStore{claims: [][]uint64{{1, 2}}}
	got, err := NewCommitter(st).Commit(context.Background(), planned, 7)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if !reflect.DeepEqual(got, planned) {
		t.Fatalf("got %v, want %v", got, planned)
	}
	if len(st.released) != 0 {
		t.Fatalf("unexpected release calls: %v", st.released)
	}
}

func TestCommitFullConflict(t *testing.T) {
	planned := []model.Seat{seat("A", 1), seat("A", 2)}
	st := &scriptStore{claims: [][]uint64{{}}}
	if _, err := NewCommitter(st).Commit(context.Background(), planned, 7); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	// Nothing was won, so there is nothing to compensate.
	if len(st.released) != 0 {
		t.Fatalf("unexpected release calls: %v", st.released)
	}
}

func TestCommitPartialClaimIsReleased(t *testing.T) {
	planned := []model.Seat{seat("A", 1), seat("A", 2), seat("A", 3)}
	st := &scriptStore{claims: [][]uint64{{1, 3}}}
	if _, err := NewCommitter(st).Commit(context.Background(), planned, 7); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	want := [][]uint64{{1, 3}}
	if !reflect.DeepEqual(st.released, want) {
		t.Fatalf("released %v, want %v", st.released, want)
	}
}

func TestCommitClaimErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	st := &scriptStore{claimErr: boom}
	_, err := NewCommitter(st).Commit(context.Background(), []model.Seat{seat("A", 1)}, 7)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped claim error, got %v", err)
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("store failure must not masquerade as a conflict: %v", err)
	}
}

func TestCommitReleaseErrorSurfaces(t *testing.T) {
	boom := errors.New("connection reset")
	st := &scriptStore{claims: [][]uint64{{1}}, releaseErr: boom}
	planned := []model.Seat{seat("A", 1), seat("A", 2)}
	_, err := NewCommitter(st).Commit(context.Background(), planned, 7)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped release error, got %v", err)
	}
}
