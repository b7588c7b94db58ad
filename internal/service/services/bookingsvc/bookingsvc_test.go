package bookingsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/ibooking"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iorder"
	"github.com/workhub/workplace-backend/internal/service/models/booking"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/room"
)

type fakeRoomRepo struct {
	rooms map[int64]room.Room
}

func (f *fakeRoomRepo) Insert(_ context.Context, r room.Room) (*room.Room, error) {
	return &r, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, r room.Room) (*room.Room, error) {
	return &r, nil
}

func (f *fakeRoomRepo) SetActive(_ context.Context, _ int64, _ bool) error {
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &r, nil
}

func (f *fakeRoomRepo) Query(_ context.Context, _ *room.QueryRoomsModel) ([]room.Room, error) {
	var out []room.Room
	for _, r := range f.rooms {
		out = append(out, r)
	}

	return out, nil
}

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]booking.Booking
	calls    []string
	lockErr  error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: map[int64]booking.Booking{}}
}

func (f *fakeBookingRepo) Insert(_ context.Context, b booking.Booking) (*booking.Booking, error) {
	f.calls = append(f.calls, "insert")
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = b

	return &b, nil
}

func (f *fakeBookingRepo) LockRoom(_ context.Context, _ int64) error {
	f.calls = append(f.calls, "lockRoom")

	return f.lockErr
}

func (f *fakeBookingRepo) FindOverlapping(_ context.Context, roomID int64, start, end time.Time) ([]booking.Booking, error) {
	f.calls = append(f.calls, "findOverlapping")
	var out []booking.Booking
	for _, b := range f.bookings {
		if b.RoomID == roomID && booking.Overlaps(b.StartsAt, b.EndsAt, start, end) {
			out = append(out, b)
		}
	}

	return out, nil
}

func (f *fakeBookingRepo) ListEndingAfter(_ context.Context, t time.Time) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range f.bookings {
		if b.EndsAt.After(t) {
			out = append(out, b)
		}
	}

	return out, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &b, nil
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID string) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}

	return out, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	delete(f.bookings, id)

	return nil
}

type fakeBookingUOW struct {
	bookingRepo *fakeBookingRepo
	committed   bool
}

func (f *fakeBookingUOW) Begin(_ context.Context) error {
	f.bookingRepo.calls = append(f.bookingRepo.calls, "begin")

	return nil
}

func (f *fakeBookingUOW) Rollback(_ context.Context) error { return nil }

func (f *fakeBookingUOW) Commit(_ context.Context) error {
	f.bookingRepo.calls = append(f.bookingRepo.calls, "commit")
	f.committed = true

	return nil
}

func (f *fakeBookingUOW) MenuItemRepository() imenuitem.PostgresRepository { return nil }
func (f *fakeBookingUOW) OrderRepository() iorder.PostgresRepository       { return nil }

func (f *fakeBookingUOW) BookingRepository() ibooking.PostgresRepository {
	return f.bookingRepo
}

func newTestService(uow *fakeBookingUOW) *BookingService {
	return &BookingService{
		roomRepo: &fakeRoomRepo{rooms: map[int64]room.Room{
			1: {ID: 1, Name: "Boardroom", Capacity: 12, IsActive: true},
			2: {ID: 2, Name: "Old Annex", Capacity: 4, IsActive: false},
		}},
		newUOW: func() unitOfWork { return uow },
	}
}

var bookingActor = identity.Actor{ID: "u-123"}

func TestBookRejectsOverlap(t *testing.T) {
	uow := &fakeBookingUOW{bookingRepo: newFakeBookingRepo()}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	first := booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}
	if _, err := svc.Book(context.Background(), bookingActor, first); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	overlap := booking.Booking{RoomID: 1, StartsAt: start.Add(30 * time.Minute), EndsAt: start.Add(2 * time.Hour)}
	if _, err := svc.Book(context.Background(), identity.Actor{ID: "u-other"}, overlap); !errors.Is(err, apperrors.ErrBookingConflict) {
		t.Errorf("overlapping booking err = %v, want ErrBookingConflict", err)
	}

	adjacent := booking.Booking{RoomID: 1, StartsAt: start.Add(time.Hour), EndsAt: start.Add(2 * time.Hour)}
	if _, err := svc.Book(context.Background(), identity.Actor{ID: "u-other"}, adjacent); err != nil {
		t.Errorf("back-to-back booking err = %v, want nil", err)
	}
}

func TestBookLocksRoomBeforeOverlapCheck(t *testing.T) {
	uow := &fakeBookingUOW{bookingRepo: newFakeBookingRepo()}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	want := []string{"begin", "lockRoom", "findOverlapping", "insert", "commit"}
	got := uow.bookingRepo.calls
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
}

func TestBookLockFailureAborts(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.lockErr = errors.New("lock timeout")
	uow := &fakeBookingUOW{bookingRepo: repo}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}); err == nil {
		t.Fatal("want error when the room lock cannot be taken")
	}
	if uow.committed {
		t.Error("transaction must not commit when the room lock fails")
	}
	for _, c := range repo.calls {
		if c == "insert" {
			t.Error("no booking may be inserted when the room lock fails")
		}
	}
}

func TestSearchRoomsFreeWindow(t *testing.T) {
	uow := &fakeBookingUOW{bookingRepo: newFakeBookingRepo()}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantIDs map[int64]bool
	}{
		{"overlapping window hides booked room", start.Add(30 * time.Minute), start.Add(90 * time.Minute), map[int64]bool{2: true}},
		{"back-to-back window keeps it", start.Add(time.Hour), start.Add(2 * time.Hour), map[int64]bool{1: true, 2: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := svc.SearchRooms(context.Background(), room.QueryRoomsModel{FreeFrom: tt.from, FreeTo: tt.to})
			if err != nil {
				t.Fatal(err)
			}
			if len(rooms) != len(tt.wantIDs) {
				t.Fatalf("rooms = %v, want ids %v", rooms, tt.wantIDs)
			}
			for _, rm := range rooms {
				if !tt.wantIDs[rm.ID] {
					t.Errorf("unexpected room %d in result", rm.ID)
				}
			}
		})
	}

	if _, err := svc.SearchRooms(context.Background(), room.QueryRoomsModel{FreeFrom: start}); !apperrors.IsValidation(err) {
		t.Errorf("half-specified window err = %v, want validation error", err)
	}
	if _, err := svc.SearchRooms(context.Background(), room.QueryRoomsModel{FreeFrom: start.Add(time.Hour), FreeTo: start}); !apperrors.IsValidation(err) {
		t.Errorf("inverted window err = %v, want validation error", err)
	}
}

func TestBookValidation(t *testing.T) {
	uow := &fakeBookingUOW{bookingRepo: newFakeBookingRepo()}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start}); !apperrors.IsValidation(err) {
		t.Errorf("empty window err = %v, want validation error", err)
	}
	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 2, StartsAt: start, EndsAt: start.Add(time.Hour)}); !apperrors.IsValidation(err) {
		t.Errorf("inactive room err = %v, want validation error", err)
	}
	if _, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 99, StartsAt: start, EndsAt: start.Add(time.Hour)}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("unknown room err = %v, want ErrNotFound", err)
	}
}

func TestCancelOwnershipCheck(t *testing.T) {
	uow := &fakeBookingUOW{bookingRepo: newFakeBookingRepo()}
	svc := newTestService(uow)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	created, err := svc.Book(context.Background(), bookingActor, booking.Booking{RoomID: 1, StartsAt: start, EndsAt: start.Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Cancel(context.Background(), identity.Actor{ID: "u-other"}, created.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger cancel err = %v, want ErrForbidden", err)
	}
	if err := svc.Cancel(context.Background(), identity.Actor{ID: "u-other", Roles: []string{identity.RoleAdmin}}, created.ID); err != nil {
		t.Errorf("admin cancel err = %v, want nil", err)
	}
}
