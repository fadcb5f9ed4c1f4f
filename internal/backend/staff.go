package backend

import (
	"context"
	"io"

	"github.com/spec-kit/bizdash/internal/api/dto"
	"github.com/spec-kit/bizdash/internal/domain"
	"github.com/spec-kit/bizdash/internal/gateway"
)

// StaffAPI covers /staff and /businesses/:id/staff.
type StaffAPI struct {
	gw *gateway.Client
}

func NewStaffAPI(gw *gateway.Client) *StaffAPI {
	return &StaffAPI{gw: gw}
}

// ListByBusiness returns one page of a business's staff roster.
func (a *StaffAPI) ListByBusiness(ctx context.Context, businessID string, q dto.StaffQuery) (*domain.StaffPage, error) {
	var page domain.StaffPage
	if err := a.gw.Get(ctx, "/businesses/"+escape(businessID)+"/staff", q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (a *StaffAPI) Get(ctx context.Context, id string) (*domain.Staff, error) {
	var staff domain.Staff
	if err := a.gw.Get(ctx, "/staff/"+escape(id), nil, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (a *StaffAPI) Create(ctx context.Context, req dto.CreateStaffRequest) (*domain.Staff, error) {
	var staff domain.Staff
	if err := a.gw.Post(ctx, "/staff", req, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (a *StaffAPI) Update(ctx context.Context, id string, req dto.UpdateStaffRequest) (*domain.Staff, error) {
	var staff domain.Staff
	if err := a.gw.Put(ctx, "/staff/"+escape(id), req, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// Delete soft-deletes a staff member.
func (a *StaffAPI) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := a.gw.Delete(ctx, "/staff/"+escape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *StaffAPI) UploadPhoto(ctx context.Context, id, filename string, file io.Reader) (*dto.UploadPhotoResponse, error) {
	var resp dto.UploadPhotoResponse
	if err := a.gw.Upload(ctx, "/staff/"+escape(id)+"/photo", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *StaffAPI) UploadDocument(ctx context.Context, id, filename string, file io.Reader) (*dto.UploadDocumentResponse, error) {
	var resp dto.UploadDocumentResponse
	if err := a.gw.Upload(ctx, "/staff/"+escape(id)+"/documents", filename, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
