package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"print3d-service/internal/dto"
	apperrors "print3d-service/pkg/errors"
)

const estimateCurrency = "RUB"

// Цена за см³ по материалам, ₽.
var unitPrices = map[string]decimal.Decimal{
	"pla":   decimal.NewFromInt(5),
	"abs":   decimal.NewFromInt(6),
	"petg":  decimal.NewFromInt(7),
	"tpu":   decimal.NewFromInt(10),
	"nylon": decimal.NewFromInt(12),
	"resin": decimal.NewFromInt(15),
}

var techMultipliers = map[string]decimal.Decimal{
	"fdm": decimal.NewFromInt(1),
	"sla": decimal.RequireFromString("1.5"),
	"dlp": decimal.RequireFromString("1.3"),
}

const defaultTechnology = "fdm"

var (
	mm3PerCM3 = decimal.NewFromInt(1000)
	hundred   = decimal.NewFromInt(100)
)

// Estimate считает ориентировочную стоимость:
// объём (см³) × цена материала × множитель технологии × заполнение/100 × количество.
func (s *OrderService) Estimate(_ context.Context, in dto.EstimateRequestDTO) (*dto.EstimateDTO, error) {
	in.Plastic = strings.ToLower(strings.TrimSpace(in.Plastic))
	in.Technology = strings.ToLower(strings.TrimSpace(in.Technology))
	if in.Technology == "" {
		in.Technology = defaultTechnology
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации расчёта", err, nil)
	}
	return CalculateEstimate(in)
}

func CalculateEstimate(in dto.EstimateRequestDTO) (*dto.EstimateDTO, error) {
	unitPrice, ok := unitPrices[in.Plastic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownMaterial, in.Plastic)
	}
	technology := in.Technology
	if technology == "" {
		technology = defaultTechnology
	}
	multiplier, ok := techMultipliers[technology]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTechnique, technology)
	}

	volume := decimal.NewFromFloat(in.Length).
		Mul(decimal.NewFromFloat(in.Width)).
		Mul(decimal.NewFromFloat(in.Height)).
		Div(mm3PerCM3)

	price := volume.
		Mul(unitPrice).
		Mul(multiplier).
		Mul(decimal.NewFromInt(int64(in.Infill)).Div(hundred)).
		Mul(decimal.NewFromInt(int64(in.Quantity)))

	return &dto.EstimateDTO{
		Price:     price.StringFixed(2),
		Currency:  estimateCurrency,
		VolumeCM3: volume.Round(2).String(),
	}, nil
}
