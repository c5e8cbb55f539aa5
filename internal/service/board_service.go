package service

import (
	"context"
	"errors"

	"github.com/AleksMarkov/LumenTask-server/internal/audit"
	"github.com/AleksMarkov/LumenTask-server/internal/domain"
	"github.com/AleksMarkov/LumenTask-server/internal/repository"
	"github.com/AleksMarkov/LumenTask-server/pkg/apperr"
	"github.com/AleksMarkov/LumenTask-server/pkg/log"
)

// boardServiceImpl implements BoardService.
type boardServiceImpl struct {
	repo repository.BoardRepository
}

// NewBoardService creates a new board service.
func NewBoardService(repo repository.BoardRepository) BoardService {
	return &boardServiceImpl{repo: repo}
}

// CreateBoard creates a board owned by the caller.
func (s *boardServiceImpl) CreateBoard(ctx context.Context, ownerID string, req *domain.CreateBoardRequest) (*domain.Board, error) {
	l := log.Ctx(ctx)

	board := &domain.Board{
		OwnerID:    ownerID,
		Title:      req.Title,
		Icon:       req.Icon,
		Background: req.Background,
	}

	if err := s.repo.Create(ctx, board); err != nil {
		l.Error().Err(err).Str(log.FieldUserID, ownerID).Msg("failed to create board")
		return nil, apperr.Repository("failed to create board", err)
	}

	audit.LogWithDetail(ctx, audit.ActionCreateBoard, ownerID, board.ID, "board created")

	return board, nil
}

// ListBoards returns all boards owned by the caller.
func (s *boardServiceImpl) ListBoards(ctx context.Context, ownerID string) ([]domain.Board, error) {
	boards, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldUserID, ownerID).Msg("failed to list boards")
		return nil, apperr.Repository("failed to list boards", err)
	}
	return boards, nil
}

// GetBoard returns one board owned by the caller.
func (s *boardServiceImpl) GetBoard(ctx context.Context, ownerID, boardID string) (*domain.Board, error) {
	board, err := s.repo.GetByID(ctx, ownerID, boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return nil, apperr.NotFound("board not found")
		}
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldBoardID, boardID).Msg("failed to get board")
		return nil, apperr.Repository("failed to get board", err)
	}
	return board, nil
}

// UpdateBoard applies a partial update to a board owned by the caller.
func (s *boardServiceImpl) UpdateBoard(ctx context.Context, ownerID, boardID string, req *domain.UpdateBoardRequest) (*domain.Board, error) {
	l := log.Ctx(ctx)

	board, err := s.repo.Update(ctx, ownerID, boardID, repository.BoardPatch{
		Title:      req.Title,
		Icon:       req.Icon,
		Background: req.Background,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return nil, apperr.NotFound("board not found")
		}
		l.Error().Err(err).Str(log.FieldBoardID, boardID).Msg("failed to update board")
		return nil, apperr.Repository("failed to update board", err)
	}

	audit.LogWithDetail(ctx, audit.ActionUpdateBoard, ownerID, boardID, "board updated")

	return board, nil
}

// DeleteBoard removes a board owned by the caller.
func (s *boardServiceImpl) DeleteBoard(ctx context.Context, ownerID, boardID string) error {
	l := log.Ctx(ctx)

	if err := s.repo.Delete(ctx, ownerID, boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return apperr.NotFound("board not found")
		}
		l.Error().Err(err).Str(log.FieldBoardID, boardID).Msg("failed to delete board")
		return apperr.Repository("failed to delete board", err)
	}

	audit.LogWithDetail(ctx, audit.ActionDeleteBoard, ownerID, boardID, "board deleted")

	return nil
}
