package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/types"
)

var ErrRequestClosed = errors.New("request is already fulfilled")

type RequestService struct {
	requestRepo repository.RequestRepo
	paperRepo   repository.PaperRepo
}

func NewRequestService(requestRepo repository.RequestRepo, paperRepo repository.PaperRepo) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		paperRepo:   paperRepo,
	}
}

func (s *RequestService) CreateRequest(ctx context.Context, userID string, req *types.CreatePaperRequestRequest) (*types.PaperRequest, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, errors.New("subject is required")
	}
	now := time.Now().Unix()
	request := &types.PaperRequest{
		ID:          uuid.New().String(),
		Board:       req.Board,
		Class:       req.Class,
		Subject:     strings.TrimSpace(req.Subject),
		Year:        req.Year,
		ExamType:    req.ExamType,
		Note:        req.Note,
		RequesterID: userID,
		Status:      types.REQUEST_STATUS_OPEN,
		CreateAt:    now,
		UpdateAt:    now,
	}
	if err := s.requestRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) ListOpenRequests(ctx context.Context) ([]*types.PaperRequest, error) {
	return s.requestRepo.ListOpenRequests(ctx)
}

// FulfillRequest links an existing paper to an open request. Anyone may
// fulfill a request, not just the requester.
func (s *RequestService) FulfillRequest(ctx context.Context, requestID, paperID string) (*types.PaperRequest, error) {
	request, err := s.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == types.REQUEST_STATUS_FULFILLED {
		return nil, ErrRequestClosed
	}
	if _, err := s.paperRepo.GetPaper(ctx, paperID); err != nil {
		return nil, err
	}
	if err := s.requestRepo.FulfillRequest(ctx, requestID, paperID); err != nil {
		return nil, err
	}
	return s.requestRepo.GetRequest(ctx, requestID)
}

func (s *RequestService) DeleteRequest(ctx context.Context, userID, requestID string) error {
	request, err := s.requestRepo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.RequesterID != userID {
		return ErrNotOwner
	}
	return s.requestRepo.DeleteRequest(ctx, requestID)
}
