package service

import (
	"github.com/tnqbao/gau-sequia-service/repository"
)

type Service struct {
	Measure *MeasureService
	Account *AccountService
}

func InitService(repo *repository.Repository, opts ...AccountOption) *Service {
	if repo == nil {
		panic("Failed to initialize Service: repository is nil")
	}
	return &Service{
		Measure: NewMeasureService(repo.MeasureRepo),
		Account: NewAccountService(repo.UserRepo, opts...),
	}
}
