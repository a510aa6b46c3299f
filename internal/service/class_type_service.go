package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

// maxClassTypeDepth bounds the parent walk so a cyclic tree cannot hang
// generation.
const maxClassTypeDepth = 5

// ClassTypeService answers class-type questions, chiefly whether a type
// descends from the configured special root type.
type ClassTypeService struct {
	classTypes      repository.ClassTypeRepository
	specialTypeName string
	log             *zap.Logger
}

// NewClassTypeService builds the service. specialTypeName is the root type
// whose descendants skip availability checks.
func NewClassTypeService(classTypes repository.ClassTypeRepository, specialTypeName string, log *zap.Logger) *ClassTypeService {
	return &ClassTypeService{
		classTypes:      classTypes,
		specialTypeName: specialTypeName,
		log:             log,
	}
}

// List returns all class types.
func (s *ClassTypeService) List(ctx context.Context) ([]model.ClassType, error) {
	return s.classTypes.List(ctx)
}

// IsSpecial walks the parent chain of the given type and reports whether it
// reaches the configured special root. cache memoizes answers across calls
// within one generation run; pass nil to skip memoization. Unknown types are
// not special.
func (s *ClassTypeService) IsSpecial(ctx context.Context, classTypeID *string, cache map[string]bool) (bool, error) {
	if classTypeID == nil || *classTypeID == "" || s.specialTypeName == "" {
		return false, nil
	}
	if cache != nil {
		if v, ok := cache[*classTypeID]; ok {
			return v, nil
		}
	}

	special := false
	id := *classTypeID
	for depth := 0; depth < maxClassTypeDepth; depth++ {
		ct, err := s.classTypes.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return false, err
		}
		if ct.Name == s.specialTypeName {
			special = true
			break
		}
		if ct.ParentID == nil || *ct.ParentID == "" {
			break
		}
		id = *ct.ParentID
	}

	if cache != nil {
		cache[*classTypeID] = special
	}
	return special, nil
}
