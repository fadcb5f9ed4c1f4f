package backend

import (
	"context"
	"io"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// BusinessesAPI covers /businesses.
type BusinessesAPI struct {
	gw *gateway.Client
}

func NewBusinessesAPI(gw *gateway.Client) *BusinessesAPI {
	return &BusinessesAPI{gw: gw}
}

// List returns the businesses the backend lets the caller see.
func (a *BusinessesAPI) List(ctx context.Context) ([]domain.Business, error) {
	var businesses []domain.Business
	if err := a.gw.Get(ctx, "/businesses", nil, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

func (a *BusinessesAPI) Get(ctx context.Context, id string) (*domain.Business, error) {
	var business domain.Business
	if err := a.gw.Get(ctx, "/businesses/"+escape(id), nil, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (a *BusinessesAPI) GetBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	var business domain.Business
	if err := a.gw.Get(ctx, "/businesses/slug/"+escape(slug), nil, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (a *BusinessesAPI) Create(ctx context.Context, req dto.CreateBusinessRequest) (*domain.Business, error) {
	var business domain.Business
	if err := a.gw.Post(ctx, "/businesses", req, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

func (a *BusinessesAPI) Update(ctx context.Context, id string, req dto.UpdateBusinessRequest) (*domain.Business, error) {
	var business domain.Business
	if err := a.gw.Put(ctx, "/businesses/"+escape(id), req, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

// Delete soft-deletes a business.
func (a *BusinessesAPI) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := a.gw.Delete(ctx, "/businesses/"+escape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *BusinessesAPI) UploadLogo(ctx context.Context, id, filename string, file io.Reader) (*dto.UploadLogoResponse, error) {
	var resp dto.UploadLogoResponse
	if err := a.gw.Upload(ctx, "/businesses/"+escape(id)+"/logo", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
