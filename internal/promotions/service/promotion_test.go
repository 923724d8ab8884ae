package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	promotionserrors "realty/internal/promotions/errors"
	"realty/internal/promotions/validator"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/logger"
	"realty/pkg/model"
)

const promotionID = "652f1b2c9d3e4a5b6c7d8e9f"

type mockPromotionRepo struct {
	promotions map[string]*model.Promotion
	countErr   error
	updated    *model.Promotion
}

func (m *mockPromotionRepo) Create(_ context.Context, p *model.Promotion) error {
	p.ID = promotionID
	m.promotions[p.ID] = p
	return nil
}

func (m *mockPromotionRepo) FindByID(_ context.Context, id string) (*model.Promotion, error) {
	p, ok := m.promotions[id]
	if !ok {
		return nil, promotionserrors.ErrNotFound
	}
	return p, nil
}

func (m *mockPromotionRepo) FindAll(context.Context, int, int64) ([]*model.Promotion, error) {
	out := []*model.Promotion{}
	for _, p := range m.promotions {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPromotionRepo) Count(context.Context) (int64, error) {
	return int64(len(m.promotions)), m.countErr
}

func (m *mockPromotionRepo) Update(_ context.Context, id string, p *model.Promotion) error {
	if _, ok := m.promotions[id]; !ok {
		return promotionserrors.ErrNotFound
	}
	m.updated = p
	return nil
}

func (m *mockPromotionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.promotions[id]; !ok {
		return promotionserrors.ErrNotFound
	}
	delete(m.promotions, id)
	return nil
}

func newTestService() (PromotionService, *mockPromotionRepo) {
	log := logger.Discard()
	repo := &mockPromotionRepo{promotions: map[string]*model.Promotion{
		promotionID: {ID: promotionID, Title: "Festive Offer", Discount: 10},
	}}
	return NewPromotionService(repo, validator.NewPromotionValidator(log), &config.Config{Log: log}), repo
}

func as(role auth.Role) context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{UserID: "u1", Role: role})
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name       string
		ctx        context.Context
		promotion  model.Promotion
		wantStatus int
	}{
		{"admin", as(auth.RoleAdmin), model.Promotion{Title: " Monsoon  Deal ", Discount: 15}, 0},
		{"full discount", as(auth.RoleAdmin), model.Promotion{Title: "Free", Discount: 100}, 0},
		{"discount above range", as(auth.RoleAdmin), model.Promotion{Title: "Too much", Discount: 101}, http.StatusUnprocessableEntity},
		{"negative discount", as(auth.RoleAdmin), model.Promotion{Title: "Negative", Discount: -1}, http.StatusUnprocessableEntity},
		{"client", as(auth.RoleClient), model.Promotion{Title: "Deal", Discount: 5}, http.StatusForbidden},
		{"anonymous", context.Background(), model.Promotion{Title: "Deal", Discount: 5}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			p := tt.promotion
			err := svc.Create(tt.ctx, &p)
			if tt.wantStatus == 0 {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				if p.ID == "" {
					t.Error("Create() did not assign an ID")
				}
				return
			}
			if got := apperrors.AsAppError(err).StatusCode(); got != tt.wantStatus {
				t.Errorf("status = %d, want %d (err %v)", got, tt.wantStatus, err)
			}
		})
	}
}

func TestUpdate_MergesDiscount(t *testing.T) {
	svc, repo := newTestService()
	discount := 25

	got, err := svc.Update(as(auth.RoleAdmin), promotionID, &model.PromotionUpdate{Discount: &discount})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Discount != 25 || got.Title != "Festive Offer" {
		t.Errorf("Update() = %+v", got)
	}
	if repo.updated == nil || repo.updated.Discount != 25 {
		t.Errorf("stored = %+v", repo.updated)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Delete(as(auth.RoleAdmin), "652f1b2c9d3e4a5b6c7d0000")
	if got := apperrors.AsAppError(err); got.Code != apperrors.CodeNotFound {
		t.Errorf("code = %s, want %s", got.Code, apperrors.CodeNotFound)
	}
}

func TestList_CountFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.countErr = errors.New("socket closed")

	_, _, err := svc.List(context.Background(), 10, 0)
	if got := apperrors.AsAppError(err); got.Code != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", got.Code, apperrors.CodeInternal)
	}
}
