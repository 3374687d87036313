package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
)

// DirectoryServiceInterface serves the {value, label} option lists the order
// form selects workers and companies from.
type DirectoryServiceInterface interface {
	GetWorkerOptions(ctx context.Context) ([]dto.OptionDTO, error)
	GetCompanyOptions(ctx context.Context) ([]dto.OptionDTO, error)
}

type DirectoryService struct {
	workerRepo  repositories.WorkerRepositoryInterface
	companyRepo repositories.CompanyRepositoryInterface
	logger      *zap.Logger
}

func NewDirectoryService(
	workerRepo repositories.WorkerRepositoryInterface,
	companyRepo repositories.CompanyRepositoryInterface,
	logger *zap.Logger,
) DirectoryServiceInterface {
	return &DirectoryService{workerRepo: workerRepo, companyRepo: companyRepo, logger: logger}
}

func (s *DirectoryService) GetWorkerOptions(ctx context.Context) ([]dto.OptionDTO, error) {
	return s.workerRepo.GetOptions(ctx)
}

func (s *DirectoryService) GetCompanyOptions(ctx context.Context) ([]dto.OptionDTO, error) {
	return s.companyRepo.GetOptions(ctx)
}
