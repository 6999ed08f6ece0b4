package service

import (
	"docgentor-be/internal/pkg/metrics"
	"docgentor-be/pkg/accesscode"
)

type IAccessCodeService interface {
	ValidateAdminCode(code string) accesscode.Result
	ValidateDeveloperCode(code string) accesscode.Result
}

type accessCodeService struct {
	admin     *accesscode.Validator
	developer *accesscode.Validator
}

func NewAccessCodeService(admin, developer *accesscode.Validator) IAccessCodeService {
	return &accessCodeService{
		admin:     admin,
		developer: developer,
	}
}

func (s *accessCodeService) ValidateAdminCode(code string) accesscode.Result {
	return s.check(s.admin, code)
}

func (s *accessCodeService) ValidateDeveloperCode(code string) accesscode.Result {
	return s.check(s.developer, code)
}

func (s *accessCodeService) check(v *accesscode.Validator, code string) accesscode.Result {
	res := v.Validate(code)
	metrics.CodeValidationsTotal.WithLabelValues(v.Kind(), metrics.Result(res.IsValid)).Inc()
	return res
}
