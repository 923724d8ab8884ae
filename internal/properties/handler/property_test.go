package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"realty/internal/properties/service"
	apperrors "realty/pkg/errors"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockPropertyService struct {
	searchFunc       func(ctx context.Context, f model.PropertyFilter, limit int, offset int64) ([]*model.Property, int64, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Property, error)
	createFunc       func(ctx context.Context, p *model.Property) error
	updateFunc       func(ctx context.Context, id string, u *model.PropertyUpdate) (*model.Property, error)
	deleteFunc       func(ctx context.Context, id string) error
	uploadImagesFunc func(ctx context.Context, id string, files []*multipart.FileHeader) (*model.Property, error)
}

func (m *mockPropertyService) Search(ctx context.Context, f model.PropertyFilter, limit int, offset int64) ([]*model.Property, int64, error) {
	return m.searchFunc(ctx, f, limit, offset)
}

func (m *mockPropertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockPropertyService) Create(ctx context.Context, p *model.Property) error {
	return m.createFunc(ctx, p)
}

func (m *mockPropertyService) Update(ctx context.Context, id string, u *model.PropertyUpdate) (*model.Property, error) {
	return m.updateFunc(ctx, id, u)
}

func (m *mockPropertyService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockPropertyService) UploadImages(ctx context.Context, id string, files []*multipart.FileHeader) (*model.Property, error) {
	return m.uploadImagesFunc(ctx, id, files)
}

func newRouter(svc service.PropertyService) *httprouter.Router {
	router := httprouter.New()
	NewPropertyHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestParseSizes(t *testing.T) {
	five := 5
	three := 3
	tests := []struct {
		raw         string
		wantSizes   []int
		wantAtLeast *int
		wantErr     bool
	}{
		{raw: ""},
		{raw: "1,2", wantSizes: []int{1, 2}},
		{raw: "1, 2,5+", wantSizes: []int{1, 2}, wantAtLeast: &five},
		{raw: "5+,3+", wantAtLeast: &three},
		{raw: "two", wantErr: true},
		{raw: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			sizes, atLeast, err := ParseSizes(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSizes(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(sizes, tt.wantSizes) {
				t.Errorf("sizes = %v, want %v", sizes, tt.wantSizes)
			}
			if !reflect.DeepEqual(atLeast, tt.wantAtLeast) {
				t.Errorf("atLeast = %v, want %v", atLeast, tt.wantAtLeast)
			}
		})
	}
}

func TestPropertyHandler_Search(t *testing.T) {
	var gotFilter model.PropertyFilter
	var gotLimit int
	var gotOffset int64
	svc := &mockPropertyService{
		searchFunc: func(_ context.Context, f model.PropertyFilter, limit int, offset int64) ([]*model.Property, int64, error) {
			gotFilter, gotLimit, gotOffset = f, limit, offset
			return []*model.Property{{ID: "p1", Title: "Sea View"}}, 13, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?q=sea&min_price=100&sizes=2,5%2B&status=offer&page=2", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotFilter.Query != "sea" || gotFilter.Status != model.PropertyOffer {
		t.Errorf("filter = %+v", gotFilter)
	}
	if gotFilter.MinPrice == nil || *gotFilter.MinPrice != 100 || gotFilter.MaxPrice != nil {
		t.Errorf("price bounds = %v..%v", gotFilter.MinPrice, gotFilter.MaxPrice)
	}
	if gotFilter.SizeAtLeast == nil || *gotFilter.SizeAtLeast != 5 {
		t.Errorf("SizeAtLeast = %v, want 5", gotFilter.SizeAtLeast)
	}
	if gotLimit != 12 || gotOffset != 12 {
		t.Errorf("limit/offset = %d/%d, want 12/12", gotLimit, gotOffset)
	}
}

func TestPropertyHandler_SearchBadParam(t *testing.T) {
	svc := &mockPropertyService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties?max_area=big", nil)
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPropertyHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{"created", `{"title":"Sea View","size":3,"agent_id":"652f1b2c9d3e4a5b6c7d0001"}`, nil, http.StatusCreated},
		{"bad json", `{"title":`, nil, http.StatusBadRequest},
		{"forbidden", `{"title":"Sea View"}`, apperrors.Forbidden("Only administrators can manage listings"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPropertyService{
				createFunc: func(_ context.Context, p *model.Property) error {
					if tt.svcErr != nil {
						return tt.svcErr
					}
					p.ID = "p1"
					return nil
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestPropertyHandler_UploadImages(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("images", "front.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte{0xff, 0xd8, 0xff}); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	var gotFiles []*multipart.FileHeader
	svc := &mockPropertyService{
		uploadImagesFunc: func(_ context.Context, id string, files []*multipart.FileHeader) (*model.Property, error) {
			gotFiles = files
			return &model.Property{ID: id, Images: []string{"http://cdn/front.jpg"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/id/p1/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(gotFiles) != 1 || gotFiles[0].Filename != "front.jpg" {
		t.Errorf("files = %v", gotFiles)
	}

	var resp struct {
		Data model.Property `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Images) != 1 {
		t.Errorf("images = %v", resp.Data.Images)
	}
}

func TestPropertyHandler_UploadImagesRequiresMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties/id/p1/images", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(&mockPropertyService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
