package service

import (
	"context"
	"errors"
	"strings"

	"brewlog/internal/models"
	"brewlog/internal/repository"
)

var errNameRequired = errors.New("name is required")

// EquipmentService is thin validation over the equipment registry; the
// interesting rule is just ownership scoping, enforced in SQL.
type EquipmentService struct {
	repo repository.EquipmentRepo
}

func NewEquipmentService(repo repository.EquipmentRepo) *EquipmentService {
	return &EquipmentService{repo: repo}
}

func (s *EquipmentService) CreateGrinder(ctx context.Context, userID int, g models.Grinder) (models.Grinder, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return models.Grinder{}, errNameRequired
	}
	g.UserID = userID
	id, err := s.repo.CreateGrinder(ctx, g)
	if err != nil {
		return models.Grinder{}, err
	}
	g.ID = id
	return g, nil
}

func (s *EquipmentService) ListGrinders(ctx context.Context, userID int) ([]models.Grinder, error) {
	return s.repo.ListGrinders(ctx, userID)
}

func (s *EquipmentService) UpdateGrinder(ctx context.Context, userID int, g models.Grinder) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return errNameRequired
	}
	g.UserID = userID
	return s.repo.UpdateGrinder(ctx, g)
}

func (s *EquipmentService) DeleteGrinder(ctx context.Context, userID, id int) error {
	return s.repo.DeleteGrinder(ctx, userID, id)
}

func (s *EquipmentService) CreateBrewer(ctx context.Context, userID int, b models.Brewer) (models.Brewer, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return models.Brewer{}, errNameRequired
	}
	b.UserID = userID
	id, err := s.repo.CreateBrewer(ctx, b)
	if err != nil {
		return models.Brewer{}, err
	}
	b.ID = id
	return b, nil
}

func (s *EquipmentService) ListBrewers(ctx context.Context, userID int) ([]models.Brewer, error) {
	return s.repo.ListBrewers(ctx, userID)
}

func (s *EquipmentService) UpdateBrewer(ctx context.Context, userID int, b models.Brewer) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return errNameRequired
	}
	b.UserID = userID
	return s.repo.UpdateBrewer(ctx, b)
}

func (s *EquipmentService) DeleteBrewer(ctx context.Context, userID, id int) error {
	return s.repo.DeleteBrewer(ctx, userID, id)
}

func (s *EquipmentService) CreateServer(ctx context.Context, userID int, srv models.Server) (models.Server, error) {
	srv.Name = strings.TrimSpace(srv.Name)
	if srv.Name == "" {
		return models.Server{}, errNameRequired
	}
	srv.UserID = userID
	id, err := s.repo.CreateServer(ctx, srv)
	if err != nil {
		return models.Server{}, err
	}
	srv.ID = id
	return srv, nil
}

func (s *EquipmentService) ListServers(ctx context.Context, userID int) ([]models.Server, error) {
	return s.repo.ListServers(ctx, userID)
}

func (s *EquipmentService) UpdateServer(ctx context.Context, userID int, srv models.Server) error {
	srv.Name = strings.TrimSpace(srv.Name)
	if srv.Name == "" {
		return errNameRequired
	}
	srv.UserID = userID
	return s.repo.UpdateServer(ctx, srv)
}

func (s *EquipmentService) DeleteServer(ctx context.Context, userID, id int) error {
	return s.repo.DeleteServer(ctx, userID, id)
}
