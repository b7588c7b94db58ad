package configsvc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/service/models/coreconfig"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
)

type fakeRepo struct {
	settings map[string]coreconfig.Setting
}

func (f *fakeRepo) Get(_ context.Context, key string) (*coreconfig.Setting, error) {
	s, ok := f.settings[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &s, nil
}

func (f *fakeRepo) Upsert(_ context.Context, s coreconfig.Setting) (*coreconfig.Setting, error) {
	f.settings[s.Key] = s

	return &s, nil
}

func (f *fakeRepo) List(_ context.Context) ([]coreconfig.Setting, error) {
	var out []coreconfig.Setting
	for _, s := range f.settings {
		out = append(out, s)
	}

	return out, nil
}

var admin = identity.Actor{ID: "admin-1", Roles: []string{identity.RoleAdmin}}

func TestSet(t *testing.T) {
	repo := &fakeRepo{settings: map[string]coreconfig.Setting{}}
	svc := &ConfigService{repo: repo}

	set, err := svc.Set(context.Background(), admin, "ordering.cutoff_hour", json.RawMessage(`16`))
	if err != nil {
		t.Fatal(err)
	}
	if set.UpdatedBy != admin.ID {
		t.Errorf("updatedBy = %q, want the acting admin", set.UpdatedBy)
	}

	got, err := svc.Get(context.Background(), "ordering.cutoff_hour")
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Value) != "16" {
		t.Errorf("value = %s, want 16", got.Value)
	}
}

func TestSetValidation(t *testing.T) {
	svc := &ConfigService{repo: &fakeRepo{settings: map[string]coreconfig.Setting{}}}

	if _, err := svc.Set(context.Background(), admin, "", json.RawMessage(`1`)); !apperrors.IsValidation(err) {
		t.Errorf("empty key err = %v, want validation error", err)
	}
	if _, err := svc.Set(context.Background(), admin, "broken", json.RawMessage(`{`)); !apperrors.IsValidation(err) {
		t.Errorf("invalid JSON err = %v, want validation error", err)
	}
}
