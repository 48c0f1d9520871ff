package tag

import (
	"context"

	"github.com/Guyuepp/go-clean-forum/domain"
)

type service struct {
	tagRepo domain.TagRepository
}

var _ domain.TagUsecase = (*service)(nil)

func NewService(t domain.TagRepository) *service {
	return &service{tagRepo: t}
}

func (s *service) Fetch(ctx context.Context) ([]domain.Tag, error) {
	res, err := s.tagRepo.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []domain.Tag{}
	}
	return res, nil
}
