package favoritesvc

import (
	"context"
	"errors"
	"testing"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/favorite"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
)

type fakeRepo struct {
	nextID    int64
	favorites map[int64]favorite.Favorite
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, favorites: map[int64]favorite.Favorite{}}
}

func (f *fakeRepo) Insert(_ context.Context, fav favorite.Favorite) (*favorite.Favorite, error) {
	fav.ID = f.nextID
	f.nextID++
	f.favorites[fav.ID] = fav

	return &fav, nil
}

func (f *fakeRepo) Update(_ context.Context, fav favorite.Favorite) (*favorite.Favorite, error) {
	if _, ok := f.favorites[fav.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	f.favorites[fav.ID] = fav

	return &fav, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*favorite.Favorite, error) {
	fav, ok := f.favorites[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &fav, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]favorite.Favorite, error) {
	var out []favorite.Favorite
	for _, fav := range f.favorites {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}

	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(f.favorites, id)

	return nil
}

var owner = identity.Actor{ID: "u-123"}

func TestCreateStampsOwner(t *testing.T) {
	svc := &FavoriteService{repo: newFakeRepo()}

	created, err := svc.Create(context.Background(), owner, favorite.Favorite{
		Name:      "Platform team",
		Attendees: []string{"u-456", "u-789"},
		UserID:    "someone-else",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.UserID != owner.ID {
		t.Errorf("owner = %q, the acting user must own the favorite", created.UserID)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := &FavoriteService{repo: newFakeRepo()}

	if _, err := svc.Create(context.Background(), owner, favorite.Favorite{}); !apperrors.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestUpdateAndDeleteOwnershipCheck(t *testing.T) {
	repo := newFakeRepo()
	svc := &FavoriteService{repo: repo}

	created, err := svc.Create(context.Background(), owner, favorite.Favorite{Name: "Platform team"})
	if err != nil {
		t.Fatal(err)
	}

	stranger := identity.Actor{ID: "u-other"}
	if _, err := svc.Update(context.Background(), stranger, favorite.Favorite{ID: created.ID, Name: "Hijacked"}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger update err = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), stranger, created.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger delete err = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Errorf("owner delete err = %v, want nil", err)
	}
}

func TestListScopedToUser(t *testing.T) {
	repo := newFakeRepo()
	svc := &FavoriteService{repo: repo}

	if _, err := svc.Create(context.Background(), owner, favorite.Favorite{Name: "Mine"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(context.Background(), identity.Actor{ID: "u-other"}, favorite.Favorite{Name: "Theirs"}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Mine" {
		t.Errorf("list = %+v, want only the owner's favorites", got)
	}
}
