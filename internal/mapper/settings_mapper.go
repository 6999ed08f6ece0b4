package mapper

import (
	"docgentor-be/internal/entity"
	"docgentor-be/internal/model"
)

type SettingsMapper struct{}

func NewSettingsMapper() *SettingsMapper {
	return &SettingsMapper{}
}

func (m *SettingsMapper) ToEntity(s *model.AppSettings) *entity.AppSettings {
	if s == nil {
		return nil
	}
	return &entity.AppSettings{
		Id:                 s.Id,
		FreemiumCode:       s.FreemiumCode,
		FreemiumCodeExpiry: s.FreemiumCodeExpiry,
		MonthlyPrice:       s.MonthlyPrice,
		YearlyPrice:        s.YearlyPrice,
		Version:            s.Version,
		UpdatedBy:          s.UpdatedBy,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *SettingsMapper) ToModel(s *entity.AppSettings) *model.AppSettings {
	if s == nil {
		return nil
	}
	return &model.AppSettings{
		Id:                 s.Id,
		FreemiumCode:       s.FreemiumCode,
		FreemiumCodeExpiry: s.FreemiumCodeExpiry,
		MonthlyPrice:       s.MonthlyPrice,
		YearlyPrice:        s.YearlyPrice,
		Version:            s.Version,
		UpdatedBy:          s.UpdatedBy,
		UpdatedAt:          s.UpdatedAt,
	}
}
